package selfplay

import (
	"math"

	"uctzero/searcher"

	"golang.org/x/exp/rand"
)

// adjustTemperature turns visit counts into move probabilities proportional
// to visits^(1/temperature), in ranking order.
func adjustTemperature(ranked []*searcher.Node, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(ranked))
	for i, child := range ranked {
		prob := math.Pow(float64(child.Visits()), exponent)
		sum += prob
		probs[i] = prob
	}
	// Normalize
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(probs []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}
