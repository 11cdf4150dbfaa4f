// Package opponent holds the machine players. Every strategy is a function of
// the board and the mark it plays; none of them mutates the board it is given.
package opponent

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Difficulty names a strategy.
type Difficulty string

const (
	DifficultyRandom    Difficulty = "random"
	DifficultyHeuristic Difficulty = "heuristic"
	DifficultyMinimax   Difficulty = "minimax"
)

// Strategy picks the index of the cell the machine plays next.
// Move fails with apperror.ErrNoLegalMove when the board is full.
type Strategy interface {
	Difficulty() Difficulty
	Move(board entity.Board, mark entity.Cell) (int, error)
}

// ParseDifficulty accepts the names above, case-insensitively. The legacy
// aliases easy/medium/hard map onto random/heuristic/minimax.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "easy":
		return DifficultyRandom, nil
	case "heuristic", "medium":
		return DifficultyHeuristic, nil
	case "minimax", "hard", "unbeatable":
		return DifficultyMinimax, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, name)
	}
}

// New builds the strategy for difficulty. rng feeds the randomised
// strategies; a nil rng gets a fresh randomly seeded one.
func New(difficulty Difficulty, rng *rand.Rand) (Strategy, error) {
	if rng == nil {
		rng = NewRand(0)
	}

	switch difficulty {
	case DifficultyRandom:
		return NewRandom(rng), nil
	case DifficultyHeuristic:
		return NewHeuristic(rng), nil
	case DifficultyMinimax:
		return NewMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

// NewRand returns a PCG-backed generator. Seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64() //nolint: gosec // game randomness, not security
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint: gosec // same as above
}

func availableOrFail(board *entity.Board) ([]int, error) {
	available := board.AvailableIndices()
	if len(available) == 0 {
		return nil, apperror.ErrNoLegalMove
	}

	return available, nil
}
