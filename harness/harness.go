// Package harness times repeated invocations of a caller-supplied unit of
// work and aggregates the timings into throughput and latency statistics.
//
// The harness is deliberately ignorant of what the work does: one inference
// call, one allocation, one RPC. It performs no I/O of its own, issues calls
// strictly sequentially, and never cancels a call in flight. Failures of the
// work propagate immediately with no partial result.
package harness

import (
	"time"

	"github.com/pkg/errors"
)

// Scenario labels a measurement run.
type Scenario string

const (
	// ScenarioOffline is the maximum-rate throughput run under a time budget.
	ScenarioOffline Scenario = "offline"
	// ScenarioServer is the fixed-count per-request latency run.
	ScenarioServer Scenario = "server"
	// ScenarioSingleStream is the fixed-count run issued one sample at a time.
	ScenarioSingleStream Scenario = "single_stream"
)

// Work is one timed invocation, opaque to the harness.
type Work func() error

var (
	// ErrInvalidDuration is returned when a duration-based run is requested
	// with a non-positive time budget.
	ErrInvalidDuration = errors.New("run duration must be positive")
	// ErrInvalidCount is returned when a count-based run is requested with a
	// non-positive invocation count.
	ErrInvalidCount = errors.New("invocation count must be positive")
)

// Result is the immutable aggregate of one completed measurement run.
// Samples counts only measured invocations; warm-up calls are never
// included.
type Result struct {
	Scenario   Scenario      `json:"scenario"`
	Samples    int           `json:"samples"`
	Elapsed    time.Duration `json:"elapsed"`
	Throughput float64       `json:"throughput_per_sec"`
	Latency    LatencyStats  `json:"latency"`
}

type options struct {
	drain func() error
}

// Option adjusts how a run is executed.
type Option func(*options)

// WithDrain registers a hook invoked after the final work call of a warm-up
// or duration-based run, before elapsed time is finalized. Runtimes that
// queue device work asynchronously use it to flush outstanding operations so
// that timings reflect completed work.
func WithDrain(drain func() error) Option {
	return func(o *options) {
		o.drain = drain
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WarmUp invokes work the given number of times, discarding all timing data.
// Any drain hook runs after the last invocation so that first-call
// initialization costs (lazy kernel compilation, allocator growth) are fully
// paid before a measured phase begins. A zero or negative iteration count is
// a no-op.
func WarmUp(work Work, iterations int, opts ...Option) error {
	o := applyOptions(opts)

	for i := 0; i < iterations; i++ {
		if err := work(); err != nil {
			return errors.Wrapf(err, "warm-up invocation %d", i+1)
		}
	}

	if o.drain != nil {
		if err := o.drain(); err != nil {
			return errors.Wrap(err, "draining after warm-up")
		}
	}
	return nil
}

// RunForDuration repeatedly invokes work until the cumulative wall time since
// the first invocation reaches d, timing each call. The deadline is only
// checked between invocations: an in-flight call always completes, so the
// invocation count may be as low as 1 and the elapsed time may overshoot d.
func RunForDuration(work Work, d time.Duration, opts ...Option) (*Result, error) {
	if d <= 0 {
		return nil, errors.Wrapf(ErrInvalidDuration, "got %v", d)
	}
	o := applyOptions(opts)

	samples := make([]float64, 0, 4096)
	start := time.Now()
	for {
		callStart := time.Now()
		if err := work(); err != nil {
			return nil, errors.Wrapf(err, "invocation %d", len(samples)+1)
		}
		samples = append(samples, millisecondsSince(callStart))

		if time.Since(start) >= d {
			break
		}
	}

	if o.drain != nil {
		if err := o.drain(); err != nil {
			return nil, errors.Wrap(err, "draining after run")
		}
	}
	elapsed := time.Since(start)

	return newResult(ScenarioOffline, samples, elapsed), nil
}

// RunForCount invokes work exactly count times, timing each call
// individually. The scenario label is supplied by the caller, typically
// ScenarioServer or ScenarioSingleStream.
func RunForCount(work Work, scenario Scenario, count int, opts ...Option) (*Result, error) {
	if count <= 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", count)
	}
	o := applyOptions(opts)

	samples := make([]float64, 0, count)
	start := time.Now()
	for i := 0; i < count; i++ {
		callStart := time.Now()
		if err := work(); err != nil {
			return nil, errors.Wrapf(err, "invocation %d", i+1)
		}
		samples = append(samples, millisecondsSince(callStart))
	}

	if o.drain != nil {
		if err := o.drain(); err != nil {
			return nil, errors.Wrap(err, "draining after run")
		}
	}
	elapsed := time.Since(start)

	return newResult(scenario, samples, elapsed), nil
}

func newResult(scenario Scenario, samples []float64, elapsed time.Duration) *Result {
	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(len(samples)) / elapsed.Seconds()
	}
	return &Result{
		Scenario:   scenario,
		Samples:    len(samples),
		Elapsed:    elapsed,
		Throughput: throughput,
		Latency:    Summarize(samples),
	}
}

func millisecondsSince(t time.Time) float64 {
	return float64(time.Since(t).Nanoseconds()) / 1e6
}
