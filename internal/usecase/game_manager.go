package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-engine/internal/session"
)

const lockStripes = 64

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot session.Snapshot) error
	GetByID(ctx context.Context, id string) (session.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

// CreateGameRequest overrides the configured defaults; empty fields keep them.
type CreateGameRequest struct {
	StartingPlayer string `json:"starting_player,omitempty"`
	Difficulty     string `json:"difficulty,omitempty"`
	PlayerMark     string `json:"player_mark,omitempty"`
}

// GameManager keeps many independent sessions behind their IDs. Every command
// loads one session, applies one GameSession operation and stores it again.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	defaults    session.Options

	// serialises commands on the same session inside this process
	locks [lockStripes]sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, defaults session.Options) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		defaults:    defaults,
	}
}

func (that *GameManager) CreateGame(ctx context.Context, req CreateGameRequest) (session.Snapshot, error) {
	options, err := that.options(req)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("invalid game options: %w", err)
	}

	game, err := session.New(uuid.NewString(), options)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	snapshot := game.Snapshot()
	if err = that.sessionRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to save session: %w", err)
	}

	that.logger.Info("game created",
		"gameID", snapshot.ID,
		"difficulty", snapshot.Difficulty,
		"startingPlayer", snapshot.StartingPlayer,
		"humanMark", snapshot.Human.Mark,
	)

	return snapshot, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (session.Snapshot, error) {
	game, err := that.load(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}

	return game.Snapshot(), nil
}

func (that *GameManager) SubmitHumanMove(ctx context.Context, id string, cell int) (session.Snapshot, error) {
	return that.modify(ctx, id, "SubmitHumanMove", func(game *session.GameSession) error {
		return game.SubmitHumanMove(cell)
	})
}

// AdvanceMachineMove plays the machine's move and also returns the chosen cell.
func (that *GameManager) AdvanceMachineMove(ctx context.Context, id string) (session.Snapshot, int, error) {
	cell := -1

	snapshot, err := that.modify(ctx, id, "AdvanceMachineMove", func(game *session.GameSession) error {
		var err error
		cell, err = game.AdvanceMachineMove()
		return err
	})

	return snapshot, cell, err
}

func (that *GameManager) ResetGame(ctx context.Context, id string) (session.Snapshot, error) {
	snapshot, err := that.modify(ctx, id, "ResetGame", func(game *session.GameSession) error {
		game.Reset()
		return nil
	})
	if err != nil {
		return snapshot, err
	}

	that.logger.Info("game reset", "gameID", id, "state", snapshot.State)

	return snapshot, nil
}

func (that *GameManager) SetDifficulty(ctx context.Context, id, name string) (session.Snapshot, error) {
	return that.modify(ctx, id, "SetDifficulty", func(game *session.GameSession) error {
		difficulty, err := opponent.ParseDifficulty(name)
		if err != nil {
			return err
		}
		return game.SetDifficulty(difficulty)
	})
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// modify runs apply against the stored session. A rejected command leaves
// storage untouched and returns the unchanged snapshot with the error.
func (that *GameManager) modify(ctx context.Context, id, method string, apply func(*session.GameSession) error) (session.Snapshot, error) {
	log := that.logger.With("method", method, "gameID", id)

	unlock := that.lock(id)
	defer unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}

	if err = apply(game); err != nil {
		log.Debug("command rejected", "error", err)
		return game.Snapshot(), err
	}

	snapshot := game.Snapshot()
	if err = that.sessionRepo.CreateOrUpdate(ctx, snapshot); err != nil {
		return session.Snapshot{}, fmt.Errorf("failed to save session: %w", err)
	}

	if game.State() == session.StateFinished {
		log.Info("game finished", "outcome", snapshot.Outcome.Status, "winner", snapshot.Outcome.Winner)
	}

	return snapshot, nil
}

func (that *GameManager) load(ctx context.Context, id string) (*session.GameSession, error) {
	snapshot, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game, err := session.Restore(snapshot, that.defaults.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return game, nil
}

func (that *GameManager) options(req CreateGameRequest) (session.Options, error) {
	options := that.defaults

	if req.StartingPlayer != "" {
		starting, err := entity.ParsePlayerKind(req.StartingPlayer)
		if err != nil {
			return session.Options{}, err
		}
		options.StartingPlayer = starting
	}

	if req.Difficulty != "" {
		difficulty, err := opponent.ParseDifficulty(req.Difficulty)
		if err != nil {
			return session.Options{}, err
		}
		options.Difficulty = difficulty
	}

	if req.PlayerMark != "" {
		mark, err := entity.ParseMark(req.PlayerMark)
		if err != nil {
			return session.Options{}, err
		}
		options.PlayerMark = mark
	}

	return options, nil
}

func (that *GameManager) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	mu := &that.locks[h.Sum32()%lockStripes]
	mu.Lock()

	return mu.Unlock
}
