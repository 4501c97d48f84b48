package entity

type Player struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DefaultPlayers - players used when none are configured.
func DefaultPlayers() []Player {
	return []Player{
		{Label: "You", Color: "blue"},
		{Label: "Enemy", Color: "green"},
	}
}
