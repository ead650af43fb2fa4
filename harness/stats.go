package harness

import (
	"sort"

	stats "github.com/montanaflynn/stats"
)

// LatencyStats aggregates a run's per-invocation latency samples. All values
// are milliseconds.
type LatencyStats struct {
	MeanMs   float64 `json:"latency_mean_ms"`
	MinMs    float64 `json:"latency_min_ms"`
	MaxMs    float64 `json:"latency_max_ms"`
	StdDevMs float64 `json:"latency_stddev_ms"`
	P50Ms    float64 `json:"latency_p50_ms"`
	P90Ms    float64 `json:"latency_p90_ms"`
	P95Ms    float64 `json:"latency_p95_ms"`
	P99Ms    float64 `json:"latency_p99_ms"`
}

// Summarize computes latency statistics over the collected samples. It is a
// pure function of its input: the slice is copied before sorting, so calling
// it twice on the same samples yields identical results.
//
// Percentiles are index-based rather than interpolated: the p-th percentile
// of N ascending samples is the sample at index floor(N*p/100), clamped to
// [0, N-1]. This matches the numbers historically reported by the benchmark
// and must not be swapped for an interpolating definition.
func Summarize(samples []float64) LatencyStats {
	if len(samples) == 0 {
		return LatencyStats{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	mean, _ := stats.Mean(sorted)
	stddev, _ := stats.StandardDeviation(sorted)

	return LatencyStats{
		MeanMs:   mean,
		MinMs:    sorted[0],
		MaxMs:    sorted[len(sorted)-1],
		StdDevMs: stddev,
		P50Ms:    percentileAt(sorted, 50),
		P90Ms:    percentileAt(sorted, 90),
		P95Ms:    percentileAt(sorted, 95),
		P99Ms:    percentileAt(sorted, 99),
	}
}

// percentileAt returns the pct-th percentile of an ascending-sorted sample
// set using the index floor(N*pct/100), clamped to the valid range.
func percentileAt(sorted []float64, pct int) float64 {
	idx := len(sorted) * pct / 100
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
