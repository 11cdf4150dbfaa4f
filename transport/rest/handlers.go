package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type gameManager interface {
	CreateGame(ctx context.Context, req usecase.CreateGameRequest) (session.Snapshot, error)
	GetGame(ctx context.Context, id string) (session.Snapshot, error)
	SubmitHumanMove(ctx context.Context, id string, cell int) (session.Snapshot, error)
	AdvanceMachineMove(ctx context.Context, id string) (session.Snapshot, int, error)
	ResetGame(ctx context.Context, id string) (session.Snapshot, error)
	SetDifficulty(ctx context.Context, id, name string) (session.Snapshot, error)
	DeleteGame(ctx context.Context, id string) error
}

type Handler struct {
	logger *slog.Logger
	games  gameManager
}

func NewHandler(logger *slog.Logger, games gameManager) *Handler {
	return &Handler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type gameResponse struct {
	Game  *session.Snapshot `json:"game,omitempty"`
	Cell  *int              `json:"cell,omitempty"`
	Error string            `json:"error,omitempty"`
}

func (that *Handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.games.CreateGame(r.Context(), req)
	if err != nil {
		that.writeAppError(w, "CreateGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, gameResponse{Game: &game})
}

func (that *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeAppError(w, "GetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: &game})
}

func (that *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeAppError(w, "DeleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handler) SubmitHumanMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeError(w, http.StatusBadRequest, "cell is required")
		return
	}

	game, err := that.games.SubmitHumanMove(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeAppError(w, "SubmitHumanMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: &game})
}

func (that *Handler) AdvanceMachineMove(w http.ResponseWriter, r *http.Request) {
	game, cell, err := that.games.AdvanceMachineMove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeAppError(w, "AdvanceMachineMove", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: &game, Cell: &cell})
}

func (that *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeAppError(w, "ResetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: &game})
}

func (that *Handler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Difficulty == "" {
		that.writeError(w, http.StatusBadRequest, "difficulty is required")
		return
	}

	game, err := that.games.SetDifficulty(r.Context(), chi.URLParam(r, "id"), req.Difficulty)
	if err != nil {
		that.writeAppError(w, "SetDifficulty", err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameResponse{Game: &game})
}

func (that *Handler) writeAppError(w http.ResponseWriter, method string, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, status, "internal server error")
		return
	}

	that.writeError(w, status, err.Error())
}

func (that *Handler) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, gameResponse{Error: message})
}

func (that *Handler) writeJSON(w http.ResponseWriter, status int, body gameResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

// StatusFor maps engine errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIndexOutOfRange),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownPlayer),
		errors.Is(err, apperror.ErrInvalidMark):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrIllegalMove),
		errors.Is(err, apperror.ErrGameAlreadyFinished),
		errors.Is(err, apperror.ErrDifficultyLocked):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
