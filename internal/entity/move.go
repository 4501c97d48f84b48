package entity

// Move - a cell-claim attempt. An empty Label means the cell is unplayed.
type Move struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Label string `json:"label"`
}

func (that Move) IsPlayed() bool {
	return that.Label != EmptyCell
}
