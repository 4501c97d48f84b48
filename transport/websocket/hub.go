package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const writeTimeout = 5 * time.Second

type sessionLookup interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

// Hub - streams game events to websocket subscribers of a session.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[string]map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn

	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subscribers: make(map[string]map[*subscriber]struct{}),
	}
}

// Register - mounts the event stream on router. Only sessions known to sessions can be subscribed to.
func (that *Hub) Register(router *mux.Router, sessions sessionLookup) {
	router.HandleFunc("/sessions/{id}/events", func(w http.ResponseWriter, r *http.Request) {
		that.handleSubscribe(w, r, sessions)
	}).Methods(http.MethodGet)
}

func (that *Hub) Publish(sessionID string, event bingo.Event) {
	log := that.logger.With("method", "Publish", "session_id", sessionID)

	for _, sub := range that.sessionSubscribers(sessionID) {
		if err := sub.write(event); err != nil {
			log.Debug("dropping subscriber", "error", err)
			that.unsubscribe(sessionID, sub)
		}
	}
}

func (that *Hub) SubscriberCount(sessionID string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subscribers[sessionID])
}

func (that *Hub) handleSubscribe(w http.ResponseWriter, r *http.Request, sessions sessionLookup) {
	sessionID := mux.Vars(r)["id"]
	log := that.logger.With("method", "handleSubscribe", "session_id", sessionID)

	if _, err := sessions.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, apperror.ErrSessionNotFound) {
			http.Error(w, apperror.ErrSessionNotFound.Error(), http.StatusNotFound)
			return
		}

		log.Error("failed to look up session", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	sub := &subscriber{conn: conn}
	that.subscribe(sessionID, sub)
	log.Debug("subscriber connected", "remote", conn.RemoteAddr().String())

	defer that.unsubscribe(sessionID, sub)

	// the stream is one-way; reading only detects the client going away
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("subscriber disconnected", "error", err)
			}
			return
		}
	}
}

func (that *Hub) subscribe(sessionID string, sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.subscribers[sessionID] == nil {
		that.subscribers[sessionID] = make(map[*subscriber]struct{})
	}
	that.subscribers[sessionID][sub] = struct{}{}
}

func (that *Hub) unsubscribe(sessionID string, sub *subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	subs, ok := that.subscribers[sessionID]
	if !ok {
		return
	}

	if _, ok = subs[sub]; !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(that.subscribers, sessionID)
	}

	_ = sub.conn.Close()
}

func (that *Hub) sessionSubscribers(sessionID string) []*subscriber {
	that.mu.Lock()
	defer that.mu.Unlock()

	subs := make([]*subscriber, 0, len(that.subscribers[sessionID]))
	for sub := range that.subscribers[sessionID] {
		subs = append(subs, sub)
	}

	return subs
}

func (that *subscriber) write(event bingo.Event) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return that.conn.WriteJSON(event)
}
