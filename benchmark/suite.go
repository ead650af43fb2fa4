package benchmark

import (
	"runtime"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/mlinfra-lab/gpubench/harness"
	"github.com/mlinfra-lab/gpubench/inference"
	"github.com/mlinfra-lab/gpubench/logging"
)

// EngineFactory constructs an engine bound to the given batch size, with its
// input already prepared. The suite creates one engine per scenario and
// closes it when the scenario completes.
type EngineFactory func(batchSize int) (inference.Engine, error)

// Suite manages and executes benchmark scenarios.
type Suite struct {
	scenarios []Scenario
	factory   EngineFactory
	mu        sync.RWMutex
	results   []ScenarioMetrics
}

// NewSuite creates a new benchmark suite.
func NewSuite(factory EngineFactory) *Suite {
	return &Suite{
		factory:   factory,
		scenarios: make([]Scenario, 0),
		results:   make([]ScenarioMetrics, 0),
	}
}

// AddScenario adds a scenario to the suite.
func (bs *Suite) AddScenario(scenario Scenario) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.scenarios = append(bs.scenarios, scenario)
}

// AddScenarios adds a list of scenarios to the suite.
func (bs *Suite) AddScenarios(scenarios []Scenario) {
	for _, s := range scenarios {
		bs.AddScenario(s)
	}
}

// RunScenario executes a single scenario: build the engine, warm it up, run
// the measured phase through the harness, and derive scenario metrics. A
// failing engine call aborts the scenario with no partial metrics.
func (bs *Suite) RunScenario(scenario Scenario) (*ScenarioMetrics, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	engine, err := bs.factory(scenario.BatchSize)
	if err != nil {
		return nil, errors.Wrapf(err, "building engine for scenario %s", scenario.Name)
	}
	defer engine.Close()

	work := func() error { return engine.Infer() }
	drain := harness.WithDrain(engine.Drain)

	logging.Debugf("scenario %s: warming up (%d iterations)", scenario.Name, scenario.WarmupRuns)
	if err := harness.WarmUp(work, scenario.WarmupRuns, drain); err != nil {
		return nil, errors.Wrapf(err, "scenario %s warm-up", scenario.Name)
	}

	var startMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	var result *harness.Result
	switch scenario.Kind {
	case harness.ScenarioOffline:
		result, err = harness.RunForDuration(work, scenario.Duration, drain)
	default:
		result, err = harness.RunForCount(work, scenario.Kind, scenario.SampleCount, drain)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", scenario.Name)
	}

	var endMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&endMem)

	return &ScenarioMetrics{
		Scenario:        scenario,
		Timestamp:       time.Now(),
		Run:             result,
		Runtime:         engine.Info(),
		TotalImages:     result.Samples * scenario.BatchSize,
		ImagesPerSecond: result.Throughput * float64(scenario.BatchSize),
		Memory:          memoryDelta(startMem, endMem),
	}, nil
}

// RunAll executes every configured scenario in order. A failed scenario is
// logged and skipped so the remaining scenarios still produce numbers; the
// first failure is returned once the sweep finishes.
func (bs *Suite) RunAll() error {
	bs.mu.RLock()
	scenarios := make([]Scenario, len(bs.scenarios))
	copy(scenarios, bs.scenarios)
	bs.mu.RUnlock()

	var firstErr error
	for _, scenario := range scenarios {
		metrics, err := bs.RunScenario(scenario)
		if err != nil {
			logging.Errorf("scenario %s failed: %v", scenario.Name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		bs.mu.Lock()
		bs.results = append(bs.results, *metrics)
		bs.mu.Unlock()

		logging.Infof("scenario %s completed: %d samples, %.1f images/sec, p99 %.2f ms",
			scenario.Name, metrics.Run.Samples, metrics.ImagesPerSecond, metrics.Run.Latency.P99Ms)
	}

	return firstErr
}

// Results returns a copy of all collected scenario metrics.
func (bs *Suite) Results() []ScenarioMetrics {
	bs.mu.RLock()
	defer bs.mu.RUnlock()

	results := make([]ScenarioMetrics, len(bs.results))
	copy(results, bs.results)
	return results
}
