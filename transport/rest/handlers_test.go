package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/bingo"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type mockSessionUseCase struct {
	mock.Mock
}

func (m *mockSessionUseCase) CreateSession(ctx context.Context) (*entity.Session, error) {
	args := m.Called(ctx)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionUseCase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionUseCase) Play(ctx context.Context, id string, row, col int) (bingo.Result, error) {
	args := m.Called(ctx, id, row, col)
	return args.Get(0).(bingo.Result), args.Error(1)
}

func (m *mockSessionUseCase) Reset(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*entity.Session)
	return session, args.Error(1)
}

func (m *mockSessionUseCase) DeleteSession(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestServer(t *testing.T) (*Server, *mockSessionUseCase) {
	t.Helper()

	uc := &mockSessionUseCase{}
	t.Cleanup(func() { uc.AssertExpectations(t) })

	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), uc), uc
}

func doRequest(t *testing.T, server http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(method, path, reader))

	return rec
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestHandleCreateSession(t *testing.T) {
	// Given: a use case that creates a 2x2 session
	server, uc := newTestServer(t)
	session, err := entity.NewSession("abc", entity.DefaultPlayers(), 2)
	require.NoError(t, err)
	uc.On("CreateSession", mock.Anything).Return(session, nil).Once()

	// When: a session is requested
	rec := doRequest(t, server, http.MethodPost, "/sessions", "")

	// Then: the view lists every numbered cell and the first player
	require.Equal(t, http.StatusCreated, rec.Code)

	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "abc", view.ID)
	assert.Equal(t, 2, view.BoardSize)
	assert.Equal(t, "You", view.CurrentPlayer.Label)
	assert.Equal(t, entity.DefaultPlayers(), view.Players)
	assert.Equal(t, [][]cellView{
		{{Row: 0, Col: 0, Number: 1}, {Row: 0, Col: 1, Number: 2}},
		{{Row: 1, Col: 0, Number: 3}, {Row: 1, Col: 1, Number: 4}},
	}, view.Cells)
}

func TestHandleGetSession(t *testing.T) {
	t.Run("Not found", func(t *testing.T) {
		server, uc := newTestServer(t)
		uc.On("GetSession", mock.Anything, "nope").
			Return(nil, errors.Join(errors.New("failed to get session"), apperror.ErrSessionNotFound)).Once()

		rec := doRequest(t, server, http.MethodGet, "/sessions/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		server, uc := newTestServer(t)
		uc.On("GetSession", mock.Anything, "abc").Return(nil, errors.New("redis down")).Once()

		rec := doRequest(t, server, http.MethodGet, "/sessions/abc", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "redis down")
	})
}

func TestHandleActivateCell(t *testing.T) {
	t.Run("Accepted move", func(t *testing.T) {
		// Given: a use case accepting (1,2)
		server, uc := newTestServer(t)
		enemy := entity.Player{Label: "Enemy", Color: "green"}
		uc.On("Play", mock.Anything, "abc", 1, 2).
			Return(bingo.Result{Accepted: true, CurrentPlayer: enemy, Message: "Enemy's turn"}, nil).Once()

		// When: the cell is activated
		rec := doRequest(t, server, http.MethodPost, "/sessions/abc/cells", `{"row":1,"col":2}`)

		// Then: the result is returned as is
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"accepted":true,"current_player":{"label":"Enemy","color":"green"},"message":"Enemy's turn"}`,
			rec.Body.String())
	})

	t.Run("Rejected move is still 200", func(t *testing.T) {
		server, uc := newTestServer(t)
		you := entity.Player{Label: "You", Color: "blue"}
		uc.On("Play", mock.Anything, "abc", 0, 0).
			Return(bingo.Result{Accepted: false, CurrentPlayer: you, Message: bingo.OccupiedMessage}, nil).Once()

		rec := doRequest(t, server, http.MethodPost, "/sessions/abc/cells", `{"row":0,"col":0}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var result bingo.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.False(t, result.Accepted)
		assert.Equal(t, bingo.OccupiedMessage, result.Message)
	})

	t.Run("Missing coordinates", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/sessions/abc/cells", `{"row":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := doRequest(t, server, http.MethodPost, "/sessions/abc/cells", `{"row":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleReset(t *testing.T) {
	server, uc := newTestServer(t)
	session, err := entity.NewSession("abc", entity.DefaultPlayers(), 3)
	require.NoError(t, err)
	uc.On("Reset", mock.Anything, "abc").Return(session, nil).Once()

	rec := doRequest(t, server, http.MethodPost, "/sessions/abc/reset", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "You", view.CurrentPlayer.Label)
	assert.Len(t, view.Cells, 3)
}

func TestHandleDeleteSession(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		server, uc := newTestServer(t)
		uc.On("DeleteSession", mock.Anything, "abc").Return(nil).Once()

		rec := doRequest(t, server, http.MethodDelete, "/sessions/abc", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		server, uc := newTestServer(t)
		uc.On("DeleteSession", mock.Anything, "abc").Return(apperror.ErrSessionNotFound).Once()

		rec := doRequest(t, server, http.MethodDelete, "/sessions/abc", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUnknownMethod(t *testing.T) {
	server, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPut, "/sessions/abc", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
