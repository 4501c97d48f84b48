package entity

import "fmt"

// Session - state of one game: its board and whose turn it is.
type Session struct {
	ID    string      `json:"id"`
	Board *BoardState `json:"board"`
	Turns *TurnCycle  `json:"turns"`
}

func NewSession(id string, players []Player, boardSize int) (*Session, error) {
	board, err := NewBoardState(boardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	turns, err := NewTurnCycle(players...)
	if err != nil {
		return nil, fmt.Errorf("failed to create turn cycle: %w", err)
	}

	return &Session{
		ID:    id,
		Board: board,
		Turns: turns,
	}, nil
}

func (that *Session) CurrentPlayer() Player {
	return that.Turns.Current()
}
