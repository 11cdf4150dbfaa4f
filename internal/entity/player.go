package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// PlayerKind identifies who is at the board.
type PlayerKind string

const (
	Human   PlayerKind = "human"
	Machine PlayerKind = "machine"

	// NoPlayer is the current player of a finished game.
	NoPlayer PlayerKind = ""
)

func (that PlayerKind) Other() PlayerKind {
	switch that {
	case Human:
		return Machine
	case Machine:
		return Human
	default:
		return NoPlayer
	}
}

func ParsePlayerKind(s string) (PlayerKind, error) {
	switch kind := PlayerKind(s); kind {
	case Human, Machine:
		return kind, nil
	default:
		return NoPlayer, fmt.Errorf("%w: %q", apperror.ErrUnknownPlayer, s)
	}
}

// Player binds a participant to its mark for the lifetime of a game.
type Player struct {
	Kind PlayerKind `json:"kind"`
	Mark Cell       `json:"mark"`
}
