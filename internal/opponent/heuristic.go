package opponent

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// PositionWeights: center 4, corners 2, edges 1.
var PositionWeights = [entity.BoardSize]int{2, 1, 2, 1, 4, 1, 2, 1, 2}

// Heuristic takes an immediate win when there is one and otherwise draws a
// cell with probability proportional to its positional weight. It does not block.
type Heuristic struct {
	rng *rand.Rand
}

func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{rng: rng}
}

func (that *Heuristic) Difficulty() Difficulty {
	return DifficultyHeuristic
}

func (that *Heuristic) Move(board entity.Board, mark entity.Cell) (int, error) {
	if !mark.IsMark() {
		return -1, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	available, err := availableOrFail(&board)
	if err != nil {
		return -1, err
	}

	if index, ok := winningMove(board, mark, available); ok {
		return index, nil
	}

	return that.weightedPick(available), nil
}

// winningMove scans in ascending order and returns the first cell that wins.
func winningMove(board entity.Board, mark entity.Cell, available []int) (int, bool) {
	for _, index := range available {
		child := board
		child[index] = mark
		if tictactoe.CheckWin(child, mark) {
			return index, true
		}
	}

	return -1, false
}

// weightedPick draws r uniformly from [1, total] and walks the cumulative weights.
func (that *Heuristic) weightedPick(available []int) int {
	total := 0
	for _, index := range available {
		total += PositionWeights[index]
	}

	r := that.rng.IntN(total) + 1
	cumulative := 0
	for _, index := range available {
		cumulative += PositionWeights[index]
		if r <= cumulative {
			return index
		}
	}

	return available[len(available)-1]
}
