// Package statistics estimates how stable a batch's rubric scores are.
package statistics

import (
	"math"
	"math/rand/v2"
	"slices"
)

// ConfidenceInterval holds the result of a bootstrap confidence interval computation.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	NumBootstraps   int     `json:"num_bootstraps"`
}

// DefaultBootstrapIterations is the number of bootstrap resamples.
const DefaultBootstrapIterations = 2000

// scoreSeed fixes the resampling so repeated runs over the same batch
// report the same interval.
const scoreSeed = 1

// ScoreCI computes a bootstrap confidence interval for the mean of rubric
// scores. The result is deterministic for a given input.
func ScoreCI(scores []int, confidenceLevel float64) ConfidenceInterval {
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = float64(s)
	}
	return BootstrapCI(values, confidenceLevel, scoreSeed)
}

// BootstrapCI computes a percentile bootstrap confidence interval over
// values. confidenceLevel is clamped to [0, 1]; 0.95 is typical.
// Fewer than 2 values yield a degenerate interval at the mean.
func BootstrapCI(values []float64, confidenceLevel float64, seed uint64) ConfidenceInterval {
	if math.IsNaN(confidenceLevel) {
		confidenceLevel = 0
	}
	confidenceLevel = max(0, min(confidenceLevel, 1))

	n := len(values)
	m := mean(values)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	iters := DefaultBootstrapIterations

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := range iters {
		for j := range n {
			sample[j] = values[rng.IntN(n)]
		}
		bootMeans[i] = mean(sample)
	}
	slices.Sort(bootMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := min(int(math.Floor(alpha/2.0*float64(iters))), iters-1)
	hiIdx := min(int(math.Floor((1.0-alpha/2.0)*float64(iters))), iters-1)

	return ConfidenceInterval{
		Lower:           bootMeans[loIdx],
		Upper:           bootMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		NumBootstraps:   iters,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
