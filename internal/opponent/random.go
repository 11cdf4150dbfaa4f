package opponent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Random plays a uniformly chosen empty cell. Not safe for concurrent use:
// it shares its generator.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (that *Random) Difficulty() Difficulty {
	return DifficultyRandom
}

func (that *Random) Move(board entity.Board, _ entity.Cell) (int, error) {
	available, err := availableOrFail(&board)
	if err != nil {
		return -1, err
	}

	return available[that.rng.IntN(len(available))], nil
}
