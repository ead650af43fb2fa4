package benchmark

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlinfra-lab/gpubench/harness"
	"github.com/mlinfra-lab/gpubench/inference"
	"github.com/mlinfra-lab/gpubench/inference/providers"
)

// mockEngine implements inference.Engine for suite tests.
type mockEngine struct {
	batch      int
	inferCalls int
	drainCalls int
	closed     bool
	inferErr   error
	failOnCall int
}

func (m *mockEngine) Infer() error {
	m.inferCalls++
	if m.failOnCall > 0 && m.inferCalls == m.failOnCall {
		return m.inferErr
	}
	return nil
}

func (m *mockEngine) Drain() error {
	m.drainCalls++
	return nil
}

func (m *mockEngine) BatchSize() int { return m.batch }

func (m *mockEngine) Info() inference.RuntimeInfo {
	return inference.RuntimeInfo{
		Backend:   providers.CPUProviderBackend,
		ModelPath: "mock.onnx",
		BatchSize: m.batch,
	}
}

func (m *mockEngine) Close() error {
	m.closed = true
	return nil
}

func mockFactory(engine *mockEngine) EngineFactory {
	return func(batchSize int) (inference.Engine, error) {
		engine.batch = batchSize
		return engine, nil
	}
}

func countScenario(name string, kind harness.Scenario, batch, samples, warmup int) Scenario {
	return NewScenarioBuilder(name).
		WithKind(kind).
		WithBatchSize(batch).
		WithSampleCount(samples).
		WithWarmupRuns(warmup).
		Build()
}

func TestRunScenarioCountedRun(t *testing.T) {
	engine := &mockEngine{}
	suite := NewSuite(mockFactory(engine))

	scenario := countScenario("server_b8", harness.ScenarioServer, 8, 20, 5)
	metrics, err := suite.RunScenario(scenario)

	require.NoError(t, err)
	// 5 warm-up calls + 20 measured, but only 20 counted as samples.
	assert.Equal(t, 25, engine.inferCalls)
	assert.Equal(t, 20, metrics.Run.Samples)
	assert.Equal(t, harness.ScenarioServer, metrics.Run.Scenario)
	assert.Equal(t, 160, metrics.TotalImages)
	assert.InDelta(t, metrics.Run.Throughput*8, metrics.ImagesPerSecond, 1e-9)
	assert.True(t, engine.closed)
	// Drained once after warm-up and once after the measured run.
	assert.Equal(t, 2, engine.drainCalls)
}

func TestRunScenarioOffline(t *testing.T) {
	engine := &mockEngine{}
	suite := NewSuite(mockFactory(engine))

	scenario := NewScenarioBuilder("offline_b1").
		WithKind(harness.ScenarioOffline).
		WithDuration(10 * time.Millisecond).
		WithWarmupRuns(2).
		Build()
	metrics, err := suite.RunScenario(scenario)

	require.NoError(t, err)
	assert.Equal(t, harness.ScenarioOffline, metrics.Run.Scenario)
	assert.GreaterOrEqual(t, metrics.Run.Samples, 1)
	assert.GreaterOrEqual(t, metrics.Run.Elapsed, 10*time.Millisecond)
}

func TestRunScenarioFailurePropagatesWithoutMetrics(t *testing.T) {
	boom := errors.New("session run failed")
	engine := &mockEngine{inferErr: boom, failOnCall: 7}
	suite := NewSuite(mockFactory(engine))

	// 5 warm-up calls succeed; the failure lands on the 2nd measured call.
	scenario := countScenario("server_b1", harness.ScenarioServer, 1, 10, 5)
	metrics, err := suite.RunScenario(scenario)

	assert.Nil(t, metrics)
	assert.ErrorIs(t, err, boom)
	assert.True(t, engine.closed)
}

func TestRunScenarioWarmupFailure(t *testing.T) {
	boom := errors.New("kernel compile failed")
	engine := &mockEngine{inferErr: boom, failOnCall: 1}
	suite := NewSuite(mockFactory(engine))

	metrics, err := suite.RunScenario(countScenario("server_b1", harness.ScenarioServer, 1, 10, 3))

	assert.Nil(t, metrics)
	assert.ErrorIs(t, err, boom)
}

func TestRunScenarioRejectsInvalid(t *testing.T) {
	engine := &mockEngine{}
	suite := NewSuite(mockFactory(engine))

	cases := []Scenario{
		countScenario("zero_samples", harness.ScenarioServer, 1, 0, 0),
		countScenario("bad_batch", harness.ScenarioServer, 0, 10, 0),
		NewScenarioBuilder("no_duration").WithKind(harness.ScenarioOffline).Build(),
		{Name: "bad_kind", Kind: harness.Scenario("burst"), BatchSize: 1, SampleCount: 1},
	}
	for _, scenario := range cases {
		metrics, err := suite.RunScenario(scenario)
		assert.Nil(t, metrics, scenario.Name)
		assert.Error(t, err, scenario.Name)
	}
	// Validation failures never reach the engine.
	assert.Equal(t, 0, engine.inferCalls)
}

func TestRunAllCollectsResults(t *testing.T) {
	engine := &mockEngine{}
	suite := NewSuite(mockFactory(engine))
	suite.AddScenarios([]Scenario{
		countScenario("server_b1", harness.ScenarioServer, 1, 5, 0),
		countScenario("single_stream", harness.ScenarioSingleStream, 1, 3, 0),
	})

	require.NoError(t, suite.RunAll())

	results := suite.Results()
	require.Len(t, results, 2)
	assert.Equal(t, 5, results[0].Run.Samples)
	assert.Equal(t, harness.ScenarioSingleStream, results[1].Run.Scenario)
}

func TestRunAllContinuesPastFailure(t *testing.T) {
	boom := errors.New("device lost")
	engine := &mockEngine{inferErr: boom, failOnCall: 2}
	suite := NewSuite(mockFactory(engine))
	suite.AddScenarios([]Scenario{
		countScenario("failing", harness.ScenarioServer, 1, 5, 0),
		countScenario("healthy", harness.ScenarioServer, 1, 5, 0),
	})

	err := suite.RunAll()

	assert.ErrorIs(t, err, boom)
	results := suite.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "healthy", results[0].Scenario.Name)
}
