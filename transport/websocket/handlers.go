package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var (
	errGameIDRequired     = errors.New("game_id is required")
	errCellRequired       = errors.New("cell is required")
	errDifficultyRequired = errors.New("difficulty is required")
)

func gamePayload(game session.Snapshot) *Payload {
	return &Payload{GameID: game.ID, Game: &game}
}

func (that *Server) handleNewGame(ctx context.Context, req *Payload) (*Payload, error) {
	var options usecase.CreateGameRequest
	if req.Options != nil {
		options = *req.Options
	}

	game, err := that.games.CreateGame(ctx, options)
	if err != nil {
		return nil, err
	}

	return gamePayload(game), nil
}

func (that *Server) handleGetGame(ctx context.Context, req *Payload) (*Payload, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	return gamePayload(game), nil
}

func (that *Server) handleTurn(ctx context.Context, req *Payload) (*Payload, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Cell == nil {
		return nil, errCellRequired
	}

	game, err := that.games.SubmitHumanMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return nil, err
	}

	return gamePayload(game), nil
}

func (that *Server) handleMachine(ctx context.Context, req *Payload) (*Payload, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, cell, err := that.games.AdvanceMachineMove(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	resp := gamePayload(game)
	resp.Cell = &cell

	return resp, nil
}

func (that *Server) handleReset(ctx context.Context, req *Payload) (*Payload, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	game, err := that.games.ResetGame(ctx, req.GameID)
	if err != nil {
		return nil, err
	}

	return gamePayload(game), nil
}

func (that *Server) handleDifficulty(ctx context.Context, req *Payload) (*Payload, error) {
	if req.GameID == "" {
		return nil, errGameIDRequired
	}

	if req.Difficulty == "" {
		return nil, errDifficultyRequired
	}

	game, err := that.games.SetDifficulty(ctx, req.GameID, req.Difficulty)
	if err != nil {
		return nil, err
	}

	return gamePayload(game), nil
}
