package opponent

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimax_Move(t *testing.T) {
	t.Run("Blocks the opponent's winning line", func(t *testing.T) {
		// Given: X threatens the bottom row and O holds the center
		board := entity.Board{e, e, e, e, o, e, e, x, x}

		// When: minimax plays O
		index, err := NewMinimax().Move(board, o)

		// Then: it blocks on cell 6, although lower cells come first
		require.NoError(t, err)
		assert.Equal(t, 6, index)
	})

	t.Run("Blocks the top row", func(t *testing.T) {
		board := entity.Board{x, x, e, e, o, e, e, e, e}

		index, err := NewMinimax().Move(board, o)

		require.NoError(t, err)
		assert.Equal(t, 2, index)
	})

	t.Run("Keeps a forced win", func(t *testing.T) {
		// Given: both players have two in a row and X is to move
		board := entity.Board{o, o, e, e, e, e, x, x, e}

		// When: minimax plays X
		index, err := NewMinimax().Move(board, x)
		require.NoError(t, err)

		// Then: the chosen cell leaves X with a won position
		child := board
		require.NoError(t, child.Place(index, x))
		assert.Equal(t, scoreWin, Score(child, x, false))
	})

	t.Run("Takes the only win", func(t *testing.T) {
		// Given: X can only win by completing the right column
		board := entity.Board{o, x, x, o, o, x, x, o, e}

		index, err := NewMinimax().Move(board, x)

		require.NoError(t, err)
		assert.Equal(t, 8, index)
	})

	t.Run("Deterministic first-seen tie break", func(t *testing.T) {
		// On an empty board every cell ties at 0, so the first one is kept.
		index, err := NewMinimax().Move(entity.Board{}, x)

		require.NoError(t, err)
		assert.Equal(t, 0, index)
	})
}

func TestScore(t *testing.T) {
	assert.Equal(t, scoreWin, Score(entity.Board{x, x, x, o, o, e, e, e, e}, x, false))
	assert.Equal(t, scoreLoss, Score(entity.Board{x, x, x, o, o, e, e, e, e}, o, true))
	assert.Equal(t, scoreTie, Score(entity.Board{o, x, o, o, x, x, x, o, x}, x, true))
	assert.Equal(t, scoreTie, Score(entity.Board{}, x, true))
}

// The human tries every reply; the machine answers with Minimax. No line may
// ever end in a human win.
func TestMinimax_NeverLoses(t *testing.T) {
	t.Run("Human moves first", func(t *testing.T) {
		leaves := exploreAgainstMinimax(t, entity.Board{}, x, o, false)
		assert.Positive(t, leaves)
	})

	t.Run("Machine moves first", func(t *testing.T) {
		leaves := exploreAgainstMinimax(t, entity.Board{}, o, x, true)
		assert.Positive(t, leaves)
	})

	t.Run("Human opens in the center", func(t *testing.T) {
		board := entity.Board{}
		board[4] = x

		leaves := exploreAgainstMinimax(t, board, x, o, true)
		assert.Positive(t, leaves)
	})
}

func exploreAgainstMinimax(t *testing.T, board entity.Board, human, machine entity.Cell, machineToMove bool) int {
	t.Helper()

	outcome := tictactoe.Outcome(board)
	if outcome.IsFinished() {
		require.NotEqual(t, entity.Win(human), outcome, "human won on %v", board)
		return 1
	}

	if machineToMove {
		index, err := NewMinimax().Move(board, machine)
		require.NoError(t, err)
		require.NoError(t, board.Place(index, machine))

		return exploreAgainstMinimax(t, board, human, machine, false)
	}

	leaves := 0
	for _, index := range board.AvailableIndices() {
		child := board
		child[index] = human
		leaves += exploreAgainstMinimax(t, child, human, machine, true)
	}

	return leaves
}
