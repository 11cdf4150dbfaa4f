package opponent

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_Move(t *testing.T) {
	t.Run("Covers every available cell and nothing else", func(t *testing.T) {
		// Given: a board with one occupied cell and eight free ones
		board := entity.Board{e, e, e, e, x, e, e, e, e}
		available := board.AvailableIndices()
		require.Len(t, available, 8)

		strategy := NewRandom(NewRand(42))
		seen := make(map[int]int)

		// When: the strategy is asked 1000 times
		for range 1000 {
			index, err := strategy.Move(board, o)
			require.NoError(t, err)
			seen[index]++
		}

		// Then: every answer is a free cell and every free cell came up
		for index := range seen {
			assert.Contains(t, available, index)
		}
		assert.Len(t, seen, len(available))
	})

	t.Run("Same seed gives the same sequence", func(t *testing.T) {
		first, second := NewRandom(NewRand(7)), NewRandom(NewRand(7))
		board := entity.Board{}

		for range 50 {
			a, err := first.Move(board, x)
			require.NoError(t, err)
			b, err := second.Move(board, x)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})
}
