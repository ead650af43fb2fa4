// Package config describes a benchmark run.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mlinfra-lab/gpubench/inference/providers"
	"github.com/mlinfra-lab/gpubench/logging"
)

// Config holds every knob of a benchmark sweep. The original scripts read
// output paths and durations from hardcoded values and environment globals;
// here everything is explicit and validated before any device work starts.
type Config struct {
	// ModelPath is the ResNet-50 ONNX model file.
	ModelPath string `yaml:"modelPath"`
	// LabelsPath optionally points to an ImageNet label file.
	LabelsPath string `yaml:"labelsPath,omitempty"`
	// ImagePath optionally points to an input image; when empty, random
	// tensors are generated instead.
	ImagePath string `yaml:"imagePath,omitempty"`
	// Provider selects the execution provider backend (cuda or cpu).
	Provider string `yaml:"provider,omitempty"`
	// DeviceID selects the GPU for the cuda provider.
	DeviceID int `yaml:"deviceID,omitempty"`
	// BatchSizes to sweep.
	BatchSizes []int `yaml:"batchSizes,omitempty"`
	// Duration of each offline run, in seconds.
	Duration int `yaml:"duration,omitempty"`
	// ServerSamples per server run.
	ServerSamples int `yaml:"serverSamples,omitempty"`
	// SingleStreamSamples for the single-stream run.
	SingleStreamSamples int `yaml:"singleStreamSamples,omitempty"`
	// WarmupRuns precede each measured phase.
	WarmupRuns int `yaml:"warmupRuns,omitempty"`
	// OutputDir receives the JSON results document.
	OutputDir string `yaml:"outputDir,omitempty"`
	// Seed fixes the random input generator; zero means time-based.
	Seed int64 `yaml:"seed,omitempty"`
}

// Default returns the sweep the original benchmark always ran: batches
// 1/8/32, 30 second offline runs, 1000 server samples, 500 single-stream
// samples, warm-up of 10.
func Default() Config {
	return Config{
		Provider:            string(providers.CUDAProviderBackend),
		BatchSizes:          []int{1, 8, 32},
		Duration:            30,
		ServerSamples:       1000,
		SingleStreamSamples: 500,
		WarmupRuns:          10,
		OutputDir:           "./results",
	}
}

// Load reads a YAML config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	logging.Infof("📒 Reading %s", path)
	buf, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, fmt.Errorf("in file %q: %v", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OfflineDuration returns the offline time budget as a time.Duration.
func (c Config) OfflineDuration() time.Duration {
	return time.Duration(c.Duration) * time.Second
}

// Validate fails fast on any non-positive count or unknown backend, before
// a model is loaded or a device touched.
func (c Config) Validate() error {
	if c.ModelPath == "" {
		return fmt.Errorf("modelPath is required")
	}
	if _, err := providers.ParseBackend(c.Provider); err != nil {
		return err
	}
	if c.DeviceID < 0 {
		return fmt.Errorf("deviceID must be >= 0, got %d", c.DeviceID)
	}
	if len(c.BatchSizes) == 0 {
		return fmt.Errorf("at least one batch size is required")
	}
	for _, b := range c.BatchSizes {
		if b < 1 {
			return fmt.Errorf("batch sizes must be > 0, got %d", b)
		}
	}
	if c.Duration < 1 {
		return fmt.Errorf("duration must be > 0, got %d", c.Duration)
	}
	if c.ServerSamples < 1 {
		return fmt.Errorf("serverSamples must be > 0, got %d", c.ServerSamples)
	}
	if c.SingleStreamSamples < 1 {
		return fmt.Errorf("singleStreamSamples must be > 0, got %d", c.SingleStreamSamples)
	}
	if c.WarmupRuns < 0 {
		return fmt.Errorf("warmupRuns must be >= 0, got %d", c.WarmupRuns)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir is required")
	}
	return nil
}
