package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type eventPublisher interface {
	Publish(sessionID string, event bingo.Event)
}

type GameSettings struct {
	Players   []entity.Player
	BoardSize int
}

type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	publisher   eventPublisher
	settings    GameSettings

	// one move at a time: load, play and save must not interleave. Events are published after unlocking.
	mu sync.Mutex
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, publisher eventPublisher, settings GameSettings) *SessionManager {
	return &SessionManager{
		logger: logger.With("component", "session_manager"),

		sessionRepo: sessionRepo,
		publisher:   publisher,
		settings:    settings,
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	session, err := entity.NewSession(uuid.NewString(), that.settings.Players, that.settings.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("session created", "session_id", session.ID)

	return session, nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Play - activates (row, col) in the session for its current player. Rejected moves are not an error:
// they come back as a Result with Accepted set to false.
func (that *SessionManager) Play(ctx context.Context, id string, row, col int) (bingo.Result, error) {
	log := that.logger.With("method", "Play", "session_id", id)

	result, events, err := that.play(ctx, id, row, col)
	if err != nil {
		return bingo.Result{}, err
	}

	// subscribers may be slow; other sessions must not wait for them
	that.publish(id, events)

	if result.Accepted {
		log.Debug("move accepted", "row", row, "col", col, "next", result.CurrentPlayer.Label)
	} else {
		log.Debug("move rejected", "row", row, "col", col, "reason", result.Message)
	}

	return result, nil
}

func (that *SessionManager) play(ctx context.Context, id string, row, col int) (bingo.Result, []bingo.Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, events, err := that.loadGame(ctx, id)
	if err != nil {
		return bingo.Result{}, nil, err
	}

	result := game.OnCellActivated(row, col)
	if !result.Accepted {
		return result, *events, nil
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, game.Session()); err != nil {
		return bingo.Result{}, nil, fmt.Errorf("failed to update session: %w", err)
	}

	return result, *events, nil
}

func (that *SessionManager) Reset(ctx context.Context, id string) (*entity.Session, error) {
	session, events, err := that.reset(ctx, id)
	if err != nil {
		return nil, err
	}

	that.publish(id, events)

	that.logger.Info("session reset", "session_id", id)

	return session, nil
}

func (that *SessionManager) reset(ctx context.Context, id string) (*entity.Session, []bingo.Event, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, events, err := that.loadGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	game.OnResetRequested()

	if err = that.sessionRepo.CreateOrUpdate(ctx, game.Session()); err != nil {
		return nil, nil, fmt.Errorf("failed to update session: %w", err)
	}

	return game.Session(), *events, nil
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session deleted", "session_id", id)

	return nil
}

// loadGame - restores the stored session into a game. Its events are buffered so observers only
// hear about changes that were saved, and only once the lock is released.
func (that *SessionManager) loadGame(ctx context.Context, id string) (*bingo.Game, *[]bingo.Event, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	events := &[]bingo.Event{}
	game := bingo.NewGame(session, bingo.ObserverFunc(func(event bingo.Event) {
		*events = append(*events, event)
	}))

	return game, events, nil
}

func (that *SessionManager) publish(id string, events []bingo.Event) {
	if that.publisher == nil {
		return
	}

	for _, event := range events {
		that.publisher.Publish(id, event)
	}
}
