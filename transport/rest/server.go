package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type uSession interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	Play(ctx context.Context, id string, row, col int) (bingo.Result, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type Server struct {
	logger   *slog.Logger
	uSession uSession
	router   *mux.Router
}

func New(logger *slog.Logger, uSession uSession) *Server {
	server := &Server{
		logger:   logger.With("component", "rest"),
		uSession: uSession,
		router:   mux.NewRouter(),
	}

	server.router.HandleFunc("/ping", pingHandler).Methods(http.MethodGet)
	server.router.HandleFunc("/sessions", server.handleCreateSession).Methods(http.MethodPost)
	server.router.HandleFunc("/sessions/{id}", server.handleGetSession).Methods(http.MethodGet)
	server.router.HandleFunc("/sessions/{id}", server.handleDeleteSession).Methods(http.MethodDelete)
	server.router.HandleFunc("/sessions/{id}/cells", server.handleActivateCell).Methods(http.MethodPost)
	server.router.HandleFunc("/sessions/{id}/reset", server.handleReset).Methods(http.MethodPost)

	return server
}

// Router - exposes the router so other transports can mount their routes next to the REST ones.
func (that *Server) Router() *mux.Router {
	return that.router
}

func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.router.ServeHTTP(w, r)
}

// Start - serves HTTP on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
