package svdcomm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource() rand.Source {
	return rand.NewPCG(42, 7)
}

func TestProbabilities(t *testing.T) {
	s := []float64{4, 2, 1, 1}

	adaptive := probabilities(s, 0)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0.25, 0.25}, adaptive, 1e-12)

	targeted := probabilities(s, 2)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0.25, 0.25}, targeted, 1e-12)

	targeted = probabilities(s, 1)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.125, 0.125}, targeted, 1e-12)
}

func TestSampleRank_Degenerate(t *testing.T) {
	s := []float64{1e-7, 1e-8, 0}

	for _, rank := range []int{0, 1, 5} {
		sel := SampleRank(s, rank, newTestSource(), 10)
		assert.Equal(t, []int{0}, sel.Indices, "rank %d", rank)
		assert.Equal(t, []float64{1.0}, sel.Probs, "rank %d", rank)
		assert.Equal(t, 0, sel.Attempts)
		assert.False(t, sel.Fallback)
	}
}

func TestSampleRank_AdaptiveKeepsDominant(t *testing.T) {
	s := []float64{5, 3, 2, 1, 0.5, 0.1}
	src := newTestSource()

	for i := 0; i < 500; i++ {
		sel := SampleRank(s, 0, src, 0)
		require.NotEmpty(t, sel.Indices)
		assert.Equal(t, 0, sel.Indices[0], "dominant component has probability 1")
		assert.Equal(t, 1, sel.Attempts)
		assert.IsIncreasing(t, sel.Indices)
		assert.Len(t, sel.Probs, len(sel.Indices))
		for j, idx := range sel.Indices {
			assert.InDelta(t, s[idx]/s[0], sel.Probs[j], 1e-12)
		}
	}
}

func TestSampleRank_NearZeroTail(t *testing.T) {
	s := []float64{1, 1, 1, 1e-8}
	src := newTestSource()

	for i := 0; i < 200; i++ {
		sel := SampleRank(s, 0, src, 0)
		assert.Equal(t, []int{0, 1, 2}, sel.Indices)
		assert.Equal(t, []float64{1, 1, 1}, sel.Probs)
	}
}

func TestSampleRank_RetriesEmptyRounds(t *testing.T) {
	// rank 1 over a flat spectrum of 50: each index has p = 0.02, so about a
	// third of rounds are empty.
	s := make([]float64, 50)
	for i := range s {
		s[i] = 1
	}
	src := newTestSource()

	retried := false
	for i := 0; i < 200; i++ {
		sel := SampleRank(s, 1, src, 0)
		require.NotEmpty(t, sel.Indices)
		assert.False(t, sel.Fallback)
		if sel.Attempts > 1 {
			retried = true
		}
	}
	assert.True(t, retried, "expected at least one empty round to be retried")
}

func TestSampleRank_FallbackAfterMaxRetries(t *testing.T) {
	// Negative probabilities never succeed.
	s := []float64{3, 2, 1}

	sel := SampleRank(s, -1, newTestSource(), 3)
	assert.True(t, sel.Fallback)
	assert.Equal(t, 3, sel.Attempts)
	assert.Equal(t, []int{0}, sel.Indices)
	assert.Equal(t, []float64{1.0}, sel.Probs)
}

func TestSampleRank_TargetRankMean(t *testing.T) {
	s := []float64{8, 6, 5, 4, 3, 2, 1, 1}
	src := newTestSource()

	const trials = 5000
	total := 0
	for i := 0; i < trials; i++ {
		total += len(SampleRank(s, 3, src, 0).Indices)
	}
	mean := float64(total) / trials
	// Retrying empty rounds pushes the mean slightly above the target.
	assert.InDelta(t, 3.0, mean, 0.3)
}

func TestSampleRank_Debiased(t *testing.T) {
	s := []float64{4, 2, 1, 0.5}
	src := newTestSource()

	const trials = 20000
	sums := make([]float64, len(s))
	for i := 0; i < trials; i++ {
		sel := SampleRank(s, 0, src, 0)
		for j, idx := range sel.Indices {
			sums[idx] += s[idx] / sel.Probs[j]
		}
	}

	for i := range s {
		assert.InDelta(t, s[i], sums[i]/trials, 0.06, "component %d", i)
	}
}

func TestSampleRank_EmptySpectrumPanics(t *testing.T) {
	assert.Panics(t, func() {
		SampleRank(nil, 0, newTestSource(), 1)
	})
}
