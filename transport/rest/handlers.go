package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rocketscienceinc/bingo-backend/internal/apperror"
	"github.com/rocketscienceinc/bingo-backend/internal/entity"
)

type cellRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type cellView struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Number int    `json:"number"`
	Label  string `json:"label"`
}

type sessionView struct {
	ID            string          `json:"id"`
	BoardSize     int             `json:"board_size"`
	Cells         [][]cellView    `json:"cells"`
	Players       []entity.Player `json:"players"`
	CurrentPlayer entity.Player   `json:"current_player"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, "handleCreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, toSessionView(session))
}

func (that *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "handleGetSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.uSession.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		that.writeError(w, "handleDeleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleActivateCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	result, err := that.uSession.Play(r.Context(), mux.Vars(r)["id"], *req.Row, *req.Col)
	if err != nil {
		that.writeError(w, "handleActivateCell", err)
		return
	}

	// a rejected move is a normal game outcome, reported in the body
	that.writeJSON(w, http.StatusOK, result)
}

func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	session, err := that.uSession.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		that.writeError(w, "handleReset", err)
		return
	}

	that.writeJSON(w, http.StatusOK, toSessionView(session))
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrSessionNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidMove):
		that.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrInvalidConfiguration):
		that.logger.Error("invalid game configuration", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "invalid game configuration"})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func toSessionView(session *entity.Session) sessionView {
	board := session.Board
	size := board.Size()

	cells := make([][]cellView, size)
	for row := range cells {
		cells[row] = make([]cellView, size)
		for col := range cells[row] {
			cell, _ := board.Cell(row, col)
			cells[row][col] = cellView{
				Row:    row,
				Col:    col,
				Number: board.Number(row, col),
				Label:  cell.Label,
			}
		}
	}

	return sessionView{
		ID:            session.ID,
		BoardSize:     size,
		Cells:         cells,
		Players:       session.Turns.Players(),
		CurrentPlayer: session.CurrentPlayer(),
	}
}
