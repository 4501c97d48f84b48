package bingo

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const (
	ReadyMessage       = "Ready?"
	OccupiedMessage    = "cell is already marked"
	OutOfBoundsMessage = "cell is out of bounds"
	InvalidMessage     = "move is not allowed"
)

type EventKind string

const (
	EventMoveAccepted EventKind = "move_accepted"
	EventMoveRejected EventKind = "move_rejected"
	EventReset        EventKind = "reset"
)

// Result - outcome of a cell activation handed back to the presentation layer.
type Result struct {
	Accepted      bool          `json:"accepted"`
	CurrentPlayer entity.Player `json:"current_player"`
	Message       string        `json:"message"`
}

type Event struct {
	Kind          EventKind     `json:"kind"`
	SessionID     string        `json:"session_id"`
	Move          *entity.Move  `json:"move,omitempty"`
	CurrentPlayer entity.Player `json:"current_player"`
	Message       string        `json:"message"`
}

// Observer receives every state change of a game. Presentation layers own all visual state
// and update it from these events.
type Observer interface {
	Notify(event Event)
}

type ObserverFunc func(event Event)

func (f ObserverFunc) Notify(event Event) {
	f(event)
}

type nopObserver struct{}

func (nopObserver) Notify(Event) {}

// Game - one game session: validates moves, marks the board and rotates turns.
type Game struct {
	session  *entity.Session
	observer Observer
}

func NewGame(session *entity.Session, observer Observer) *Game {
	if observer == nil {
		observer = nopObserver{}
	}

	return &Game{
		session:  session,
		observer: observer,
	}
}

func (that *Game) Session() *entity.Session {
	return that.session
}

func (that *Game) CurrentPlayer() entity.Player {
	return that.session.CurrentPlayer()
}

// OnCellActivated - plays the current player's mark on (row, col) and passes the turn on success.
func (that *Game) OnCellActivated(row, col int) Result {
	move := entity.Move{Row: row, Col: col, Label: that.CurrentPlayer().Label}

	if err := that.session.Board.ApplyMove(move); err != nil {
		result := Result{
			Accepted:      false,
			CurrentPlayer: that.CurrentPlayer(),
			Message:       rejectionMessage(err),
		}
		that.notify(EventMoveRejected, &move, result)

		return result
	}

	next := that.session.Turns.Advance()
	result := Result{
		Accepted:      true,
		CurrentPlayer: next,
		Message:       TurnMessage(next),
	}
	that.notify(EventMoveAccepted, &move, result)

	return result
}

// OnResetRequested - clears the board and hands the turn back to the first player.
func (that *Game) OnResetRequested() {
	that.session.Board.Reset()
	that.session.Turns.Reset()

	that.notify(EventReset, nil, Result{CurrentPlayer: that.CurrentPlayer(), Message: ReadyMessage})
}

func (that *Game) notify(kind EventKind, move *entity.Move, result Result) {
	that.observer.Notify(Event{
		Kind:          kind,
		SessionID:     that.session.ID,
		Move:          move,
		CurrentPlayer: result.CurrentPlayer,
		Message:       result.Message,
	})
}

func TurnMessage(player entity.Player) string {
	return fmt.Sprintf("%s's turn", player.Label)
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrCellOccupied):
		return OccupiedMessage
	case errors.Is(err, entity.ErrOutOfBounds):
		return OutOfBoundsMessage
	default:
		return InvalidMessage
	}
}
