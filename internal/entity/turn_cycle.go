package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
)

// TurnCycle - fixed, wrapping order of players plus the index of the active one.
type TurnCycle struct {
	players []Player
	current int
}

type turnCycleJSON struct {
	Players []Player `json:"players"`
	Current int      `json:"current"`
}

func NewTurnCycle(players ...Player) (*TurnCycle, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: turn cycle needs at least one player", apperror.ErrInvalidConfiguration)
	}

	owned := make([]Player, len(players))
	copy(owned, players)

	return &TurnCycle{players: owned}, nil
}

func (that *TurnCycle) Current() Player {
	return that.players[that.current]
}

// Advance - moves to the next player, wrapping after the last one, and returns it.
func (that *TurnCycle) Advance() Player {
	that.current = (that.current + 1) % len(that.players)

	return that.Current()
}

func (that *TurnCycle) Reset() {
	that.current = 0
}

func (that *TurnCycle) Players() []Player {
	players := make([]Player, len(that.players))
	copy(players, that.players)

	return players
}

func (that *TurnCycle) MarshalJSON() ([]byte, error) {
	return json.Marshal(turnCycleJSON{Players: that.players, Current: that.current})
}

func (that *TurnCycle) UnmarshalJSON(data []byte) error {
	var raw turnCycleJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal turn cycle: %w", err)
	}

	if len(raw.Players) == 0 {
		return fmt.Errorf("%w: turn cycle needs at least one player", apperror.ErrInvalidConfiguration)
	}

	if raw.Current < 0 || raw.Current >= len(raw.Players) {
		return fmt.Errorf("%w: current player index %d", apperror.ErrInvalidConfiguration, raw.Current)
	}

	that.players = raw.Players
	that.current = raw.Current

	return nil
}
