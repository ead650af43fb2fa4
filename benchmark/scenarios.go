// Package benchmark - Scenario definitions and execution.
package benchmark

import (
	"fmt"
	"time"

	"github.com/mlinfra-lab/gpubench/harness"
)

// Scenario defines one benchmark run configuration.
type Scenario struct {
	Name        string           `json:"name"`
	Kind        harness.Scenario `json:"kind"`
	BatchSize   int              `json:"batch_size"`
	Duration    time.Duration    `json:"duration,omitempty"`
	SampleCount int              `json:"sample_count,omitempty"`
	WarmupRuns  int              `json:"warmup_runs"`
}

// ScenarioBuilder helps build scenarios with a fluent API.
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a new scenario builder.
func NewScenarioBuilder(name string) *ScenarioBuilder {
	return &ScenarioBuilder{
		scenario: Scenario{
			Name:       name,
			Kind:       harness.ScenarioServer,
			BatchSize:  1,
			WarmupRuns: 10,
		},
	}
}

// WithKind sets the scenario kind.
func (sb *ScenarioBuilder) WithKind(kind harness.Scenario) *ScenarioBuilder {
	sb.scenario.Kind = kind
	return sb
}

// WithBatchSize sets the batch size.
func (sb *ScenarioBuilder) WithBatchSize(batchSize int) *ScenarioBuilder {
	sb.scenario.BatchSize = batchSize
	return sb
}

// WithDuration sets the time budget for duration-based runs.
func (sb *ScenarioBuilder) WithDuration(d time.Duration) *ScenarioBuilder {
	sb.scenario.Duration = d
	return sb
}

// WithSampleCount sets the invocation count for count-based runs.
func (sb *ScenarioBuilder) WithSampleCount(count int) *ScenarioBuilder {
	sb.scenario.SampleCount = count
	return sb
}

// WithWarmupRuns sets the number of untimed warm-up invocations.
func (sb *ScenarioBuilder) WithWarmupRuns(warmups int) *ScenarioBuilder {
	sb.scenario.WarmupRuns = warmups
	return sb
}

// Build returns the configured scenario.
func (sb *ScenarioBuilder) Build() Scenario {
	return sb.scenario
}

// StandardArgs parameterizes the standard scenario sweep.
type StandardArgs struct {
	// BatchSizes to sweep for the offline and server scenarios.
	BatchSizes []int
	// OfflineDuration is the time budget of each offline run.
	OfflineDuration time.Duration
	// ServerSamples is the invocation count of each server run.
	ServerSamples int
	// SingleStreamSamples is the invocation count of the single-stream run.
	SingleStreamSamples int
	// WarmupRuns precede each offline and server run.
	WarmupRuns int
}

// StandardScenarios returns the canonical sweep: an offline and a server run
// for every batch size, then one single-stream run at batch 1. The
// single-stream run keeps its historical shorter warm-up of 5 iterations.
func StandardScenarios(args StandardArgs) []Scenario {
	scenarios := make([]Scenario, 0, 2*len(args.BatchSizes)+1)

	for _, batch := range args.BatchSizes {
		scenarios = append(scenarios,
			NewScenarioBuilder(fmt.Sprintf("offline_b%d", batch)).
				WithKind(harness.ScenarioOffline).
				WithBatchSize(batch).
				WithDuration(args.OfflineDuration).
				WithWarmupRuns(args.WarmupRuns).
				Build(),
			NewScenarioBuilder(fmt.Sprintf("server_b%d", batch)).
				WithKind(harness.ScenarioServer).
				WithBatchSize(batch).
				WithSampleCount(args.ServerSamples).
				WithWarmupRuns(args.WarmupRuns).
				Build(),
		)
	}

	scenarios = append(scenarios,
		NewScenarioBuilder("single_stream").
			WithKind(harness.ScenarioSingleStream).
			WithBatchSize(1).
			WithSampleCount(args.SingleStreamSamples).
			WithWarmupRuns(5).
			Build(),
	)

	return scenarios
}

// Validate checks that the scenario is runnable before any engine work
// happens.
func (s Scenario) Validate() error {
	if s.BatchSize < 1 {
		return fmt.Errorf("scenario %s: batch size must be positive, got %d", s.Name, s.BatchSize)
	}
	switch s.Kind {
	case harness.ScenarioOffline:
		if s.Duration <= 0 {
			return fmt.Errorf("scenario %s: duration must be positive, got %v", s.Name, s.Duration)
		}
	case harness.ScenarioServer, harness.ScenarioSingleStream:
		if s.SampleCount <= 0 {
			return fmt.Errorf("scenario %s: sample count must be positive, got %d", s.Name, s.SampleCount)
		}
	default:
		return fmt.Errorf("scenario %s: unknown kind %q", s.Name, s.Kind)
	}
	return nil
}
