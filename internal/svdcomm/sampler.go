package svdcomm

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// DegenerateThreshold is the largest singular value below which a spectrum
// is treated as carrying no signal.
const DegenerateThreshold = 1e-6

// Selection is the outcome of rank sampling.
type Selection struct {
	// Indices of the kept singular components, ascending.
	Indices []int

	// Probs holds the inclusion probability computed for each kept index.
	// Kept singular values are divided by these to debias the estimate.
	Probs []float64

	// Attempts is the number of sampling rounds run. Zero for the degenerate
	// shortcut.
	Attempts int

	// Fallback is true when every round came back empty and the dominant
	// component was kept deterministically.
	Fallback bool
}

// probabilities returns the per-index inclusion probabilities for a
// descending spectrum s.
//
// With rank == 0 index i is kept with probability s[i]/s[0], so the dominant
// component is always kept. With rank > 0 the probability is
// rank·s[i]/sum(s), which keeps about rank components on average. Values
// above 1 are returned as computed. s[0] must be at least
// DegenerateThreshold; SampleRank handles smaller spectra before calling it.
func probabilities(s []float64, rank int) []float64 {
	probs := make([]float64, len(s))
	if rank == 0 {
		floats.ScaleTo(probs, 1/s[0], s)
		return probs
	}
	floats.ScaleTo(probs, float64(rank)/floats.Sum(s), s)
	return probs
}

// SampleRank picks singular components of the descending spectrum s.
//
// If s[0] is below DegenerateThreshold it returns {0} with probability 1.
// Otherwise it runs one Bernoulli trial per index with the probabilities
// from probabilities, drawing from src. Empty rounds are retried; after
// maxRetries empty rounds the dominant component is kept with probability 1
// and Fallback is set. maxRetries <= 0 retries without bound.
func SampleRank(s []float64, rank int, src rand.Source, maxRetries int) Selection {
	if len(s) == 0 {
		panic("svdcomm: empty spectrum")
	}
	if s[0] < DegenerateThreshold {
		return Selection{Indices: []int{0}, Probs: []float64{1.0}}
	}

	probs := probabilities(s, rank)
	for attempt := 1; maxRetries <= 0 || attempt <= maxRetries; attempt++ {
		var sel Selection
		for i, p := range probs {
			trial := distuv.Bernoulli{P: min(p, 1), Src: src}
			if trial.Rand() == 1 {
				sel.Indices = append(sel.Indices, i)
				sel.Probs = append(sel.Probs, p)
			}
		}
		if len(sel.Indices) > 0 {
			sel.Attempts = attempt
			return sel
		}
	}

	return Selection{
		Indices:  []int{0},
		Probs:    []float64{1.0},
		Attempts: maxRetries,
		Fallback: true,
	}
}
