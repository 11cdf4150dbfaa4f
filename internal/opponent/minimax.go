package opponent

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const (
	scoreWin  = 10
	scoreLoss = -10
	scoreTie  = 0
)

// Minimax searches the whole game tree and never loses. Scores do not decay
// with depth, so among winning lines it takes the first one found rather than
// the fastest one.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Difficulty() Difficulty {
	return DifficultyMinimax
}

// Move tries every empty cell in ascending order and keeps the one with the
// strictly greatest score, so the lowest index wins ties.
func (that *Minimax) Move(board entity.Board, mark entity.Cell) (int, error) {
	if !mark.IsMark() {
		return -1, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	available, err := availableOrFail(&board)
	if err != nil {
		return -1, err
	}

	best, bestScore := -1, math.MinInt
	for _, index := range available {
		child := board
		child[index] = mark

		if score := Score(child, mark, false); score > bestScore {
			best, bestScore = index, score
		}
	}

	return best, nil
}

// Score is the minimax value of board for the machine playing machineMark.
// Boards are passed by value, so every recursion level works on its own copy.
func Score(board entity.Board, machineMark entity.Cell, machineToMove bool) int {
	switch outcome := tictactoe.Outcome(board); outcome.Status {
	case entity.StatusWin:
		if outcome.Winner == machineMark {
			return scoreWin
		}
		return scoreLoss
	case entity.StatusTie:
		return scoreTie
	}

	toPlay := machineMark
	best := math.MinInt
	if !machineToMove {
		toPlay = machineMark.Opponent()
		best = math.MaxInt
	}

	for index, cell := range board {
		if cell != entity.EmptyCell {
			continue
		}

		child := board
		child[index] = toPlay
		score := Score(child, machineMark, !machineToMove)

		if machineToMove {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
