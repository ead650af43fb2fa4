package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlinfra-lab/gpubench/harness"
)

func TestScenarioBuilder(t *testing.T) {
	scenario := NewScenarioBuilder("server_b8").
		WithKind(harness.ScenarioServer).
		WithBatchSize(8).
		WithSampleCount(1000).
		WithWarmupRuns(10).
		Build()

	assert.Equal(t, "server_b8", scenario.Name)
	assert.Equal(t, harness.ScenarioServer, scenario.Kind)
	assert.Equal(t, 8, scenario.BatchSize)
	assert.Equal(t, 1000, scenario.SampleCount)
	assert.Equal(t, 10, scenario.WarmupRuns)
}

func TestScenarioBuilderDefaults(t *testing.T) {
	scenario := NewScenarioBuilder("defaults").Build()

	assert.Equal(t, harness.ScenarioServer, scenario.Kind)
	assert.Equal(t, 1, scenario.BatchSize)
	assert.Equal(t, 10, scenario.WarmupRuns)
}

func TestStandardScenariosComposition(t *testing.T) {
	scenarios := StandardScenarios(StandardArgs{
		BatchSizes:          []int{1, 8, 32},
		OfflineDuration:     30 * time.Second,
		ServerSamples:       1000,
		SingleStreamSamples: 500,
		WarmupRuns:          10,
	})

	// Offline + server per batch size, plus one single-stream run.
	require.Len(t, scenarios, 7)

	assert.Equal(t, "offline_b1", scenarios[0].Name)
	assert.Equal(t, harness.ScenarioOffline, scenarios[0].Kind)
	assert.Equal(t, 30*time.Second, scenarios[0].Duration)

	assert.Equal(t, "server_b8", scenarios[3].Name)
	assert.Equal(t, 8, scenarios[3].BatchSize)
	assert.Equal(t, 1000, scenarios[3].SampleCount)

	last := scenarios[6]
	assert.Equal(t, "single_stream", last.Name)
	assert.Equal(t, harness.ScenarioSingleStream, last.Kind)
	assert.Equal(t, 1, last.BatchSize)
	assert.Equal(t, 500, last.SampleCount)
	assert.Equal(t, 5, last.WarmupRuns)

	for _, s := range scenarios {
		assert.NoError(t, s.Validate(), s.Name)
	}
}

func TestScenarioValidate(t *testing.T) {
	valid := NewScenarioBuilder("ok").WithSampleCount(1).Build()
	assert.NoError(t, valid.Validate())

	noCount := NewScenarioBuilder("no_count").Build()
	assert.Error(t, noCount.Validate())

	offlineNoDuration := NewScenarioBuilder("offline").
		WithKind(harness.ScenarioOffline).
		Build()
	assert.Error(t, offlineNoDuration.Validate())
}
