package searcher

import (
	"aigames/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// Weight changes applied to every move of a finished game.
const (
	WinDelta  = 3.0
	DrawDelta = 1.0
	LoseDelta = -1.0
)

// ErrMalformedWeights is returned when a state's weights do not sum to a
// positive total, which leaves weighted sampling undefined.
var ErrMalformedWeights = errors.New("matchbox weights must sum to a positive total")

func beadDelta(outcome game.Outcome) float64 {
	switch outcome {
	case game.Win:
		return WinDelta
	case game.Draw:
		return DrawDelta
	case game.Lose:
		return LoseDelta
	default:
		panic("unexpected outcome")
	}
}

// sample draws an index with probability proportional to its weight, walking
// the running sum in list order.
func sample(rng *rand.Rand, weights []float64) (int, error) {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return -1, errors.Wrapf(ErrMalformedWeights, "negative weight %v", w)
		}
		total += w
	}
	if total <= 0 {
		return -1, errors.Wrapf(ErrMalformedWeights, "total weight %v", total)
	}

	draw := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if draw < cumulative {
			return i, nil
		}
	}
	// Rounding can leave draw at the very top of the wheel.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return -1, ErrMalformedWeights
}
