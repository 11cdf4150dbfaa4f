package session

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/opponent"
)

// Options are fixed when a session is created. Only Difficulty can change
// later, and only between games.
type Options struct {
	StartingPlayer entity.PlayerKind   `json:"starting_player"`
	Difficulty     opponent.Difficulty `json:"difficulty"`
	PlayerMark     entity.Cell         `json:"player_mark"`

	// Seed drives the randomised opponents. Zero means a random seed.
	Seed uint64 `json:"-"`
}

func DefaultOptions() Options {
	return Options{
		StartingPlayer: entity.Human,
		Difficulty:     opponent.DifficultyMinimax,
		PlayerMark:     entity.MarkX,
	}
}

func (that Options) Validate() error {
	if that.StartingPlayer != entity.Human && that.StartingPlayer != entity.Machine {
		return fmt.Errorf("%w: starting player %q", apperror.ErrUnknownPlayer, that.StartingPlayer)
	}

	if !that.PlayerMark.IsMark() {
		return fmt.Errorf("%w: player mark %q", apperror.ErrInvalidMark, that.PlayerMark)
	}

	if _, err := opponent.ParseDifficulty(string(that.Difficulty)); err != nil {
		return err
	}

	return nil
}
