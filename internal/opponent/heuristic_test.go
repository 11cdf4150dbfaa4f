package opponent

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic_Move(t *testing.T) {
	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: X owns cells 0 and 1
		board := entity.Board{x, x, e, o, o, e, e, e, e}

		// When: the heuristic plays X
		index, err := NewHeuristic(NewRand(1)).Move(board, x)

		// Then: it completes the top row
		require.NoError(t, err)
		assert.Equal(t, 2, index)
	})

	t.Run("Lowest winning index wins ties", func(t *testing.T) {
		// Given: X can win on 2, 7 or 8
		board := entity.Board{x, x, e, o, x, o, o, e, e}

		for seed := uint64(1); seed <= 20; seed++ {
			index, err := NewHeuristic(NewRand(seed)).Move(board, x)
			require.NoError(t, err)
			assert.Equal(t, 2, index)
		}
	})

	t.Run("Falls back to positional weights", func(t *testing.T) {
		// Given: an empty board, so there is no immediate win
		board := entity.Board{}
		strategy := NewHeuristic(NewRand(99))
		counts := [entity.BoardSize]int{}

		// When: many moves are drawn
		const trials = 16000
		for range trials {
			index, err := strategy.Move(board, o)
			require.NoError(t, err)
			counts[index]++
		}

		// Then: the center comes up about 4/16 of the time, edges about 1/16
		assert.InDelta(t, trials/4, counts[4], trials/40)
		for _, edge := range []int{1, 3, 5, 7} {
			assert.Less(t, counts[edge], counts[4]/2)
		}
		for _, corner := range []int{0, 2, 6, 8} {
			assert.Greater(t, counts[corner], counts[1])
		}
	})

	t.Run("Only available cells are drawn", func(t *testing.T) {
		board := entity.Board{x, o, x, e, o, e, o, x, e}
		available := board.AvailableIndices()
		strategy := NewHeuristic(NewRand(5))

		for range 200 {
			index, err := strategy.Move(board, x)
			require.NoError(t, err)
			assert.Contains(t, available, index)
		}
	})

	t.Run("Error on empty mark", func(t *testing.T) {
		_, err := NewHeuristic(NewRand(1)).Move(entity.Board{}, e)
		assert.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}
