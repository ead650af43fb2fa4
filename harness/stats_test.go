package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeKnownSamples(t *testing.T) {
	// Already sorted: index-based percentiles are easy to verify by hand.
	samples := []float64{10, 20, 30, 40, 100}

	sum := Summarize(samples)

	assert.Equal(t, 40.0, sum.MeanMs)
	assert.Equal(t, 30.0, sum.P50Ms) // floor(5*50/100) = index 2
	assert.Equal(t, 100.0, sum.P90Ms) // floor(5*90/100) = index 4
	assert.Equal(t, 100.0, sum.P95Ms)
	assert.Equal(t, 100.0, sum.P99Ms)
	assert.Equal(t, 10.0, sum.MinMs)
	assert.Equal(t, 100.0, sum.MaxMs)
}

func TestSummarizeUnsortedInput(t *testing.T) {
	sorted := Summarize([]float64{10, 20, 30, 40, 100})
	shuffled := Summarize([]float64{100, 30, 10, 40, 20})

	assert.Equal(t, sorted, shuffled)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	samples := []float64{5, 1, 3}
	Summarize(samples)
	assert.Equal(t, []float64{5, 1, 3}, samples)
}

func TestSummarizeIdempotent(t *testing.T) {
	samples := []float64{3.5, 1.25, 9.75, 2.0, 4.125, 8.5}

	first := Summarize(samples)
	second := Summarize(samples)

	assert.Equal(t, first, second)
}

func TestSummarizePercentileMonotonicity(t *testing.T) {
	cases := [][]float64{
		{1},
		{1, 2},
		{4, 1, 9, 2, 7, 3, 8, 5, 6},
		{0.5, 0.5, 0.5, 0.5},
		{12.7, 3.1, 99.2, 45.0, 8.8, 8.8, 61.3},
	}

	for _, samples := range cases {
		sum := Summarize(samples)
		assert.LessOrEqual(t, sum.P50Ms, sum.P90Ms)
		assert.LessOrEqual(t, sum.P90Ms, sum.P95Ms)
		assert.LessOrEqual(t, sum.P95Ms, sum.P99Ms)
		assert.LessOrEqual(t, sum.P99Ms, sum.MaxMs)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	sum := Summarize([]float64{42})

	assert.Equal(t, 42.0, sum.MeanMs)
	assert.Equal(t, 42.0, sum.P50Ms)
	assert.Equal(t, 42.0, sum.P99Ms)
	assert.Equal(t, 42.0, sum.MinMs)
	assert.Equal(t, 42.0, sum.MaxMs)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Equal(t, LatencyStats{}, Summarize(nil))
}
