package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/mlinfra-lab/gpubench/harness"
)

// Report is the results document written at the end of a sweep.
type Report struct {
	RunID     string            `json:"run_id"`
	Timestamp time.Time         `json:"timestamp"`
	Results   []ScenarioMetrics `json:"benchmarks"`
}

// NewReport assembles a report with a fresh run UUID.
func NewReport(results []ScenarioMetrics) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Timestamp: time.Now(),
		Results:   results,
	}
}

// Save writes the report as indented JSON into outputDir and returns the
// file path.
func (r *Report) Save(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	name := fmt.Sprintf("benchmark_results_%s.json", r.Timestamp.Format("2006-01-02_15-04-05"))
	path := filepath.Join(outputDir, name)

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing results file")
	}
	return path, nil
}

// PrintSummary renders the per-scenario summary table to stdout.
func (r *Report) PrintSummary() {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"Scenario", "Kind", "Batch", "Samples", "Elapsed",
		"Images/sec", "Mean ms", "P50 ms", "P90 ms", "P95 ms", "P99 ms",
	})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, m := range r.Results {
		lat := m.Run.Latency
		table.Append([]string{
			m.Scenario.Name,
			string(m.Run.Scenario),
			fmt.Sprintf("%d", m.Scenario.BatchSize),
			fmt.Sprintf("%d", m.Run.Samples),
			m.Run.Elapsed.Round(time.Millisecond).String(),
			fmt.Sprintf("%.1f", m.ImagesPerSecond),
			fmt.Sprintf("%.2f", lat.MeanMs),
			fmt.Sprintf("%.2f", lat.P50Ms),
			fmt.Sprintf("%.2f", lat.P90Ms),
			fmt.Sprintf("%.2f", lat.P95Ms),
			fmt.Sprintf("%.2f", lat.P99Ms),
		})
	}
	table.Render()
}

// BestThroughput returns the offline scenario with the highest images/sec,
// or nil when no offline scenario completed.
func (r *Report) BestThroughput() *ScenarioMetrics {
	var best *ScenarioMetrics
	for i := range r.Results {
		m := &r.Results[i]
		if m.Run.Scenario != harness.ScenarioOffline {
			continue
		}
		if best == nil || m.ImagesPerSecond > best.ImagesPerSecond {
			best = m
		}
	}
	return best
}
