// gpubench runs ResNet-50 inference benchmarks against ONNX Runtime and
// reports throughput and latency percentiles per scenario.
package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mlinfra-lab/gpubench/benchmark"
	"github.com/mlinfra-lab/gpubench/config"
	"github.com/mlinfra-lab/gpubench/inference"
	"github.com/mlinfra-lab/gpubench/inference/providers"
	"github.com/mlinfra-lab/gpubench/logging"
	"github.com/mlinfra-lab/gpubench/models/resnet50"
)

var (
	cfgFile             string
	modelPath           string
	labelsPath          string
	imagePath           string
	provider            string
	deviceID            int
	batchSizes          []int
	durationSec         int
	serverSamples       int
	singleStreamSamples int
	warmupRuns          int
	outputDir           string
	seed                int64
	debug               bool
	quiet               bool
)

var rootCmd = &cobra.Command{
	Use:   "gpubench",
	Short: "A tool to benchmark ResNet-50 inference throughput and latency on GPU",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if debug {
			logging.SetDebug()
		}
		if quiet {
			logging.SetQuiet()
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		backend, err := providers.ParseBackend(cfg.Provider)
		if err != nil {
			return err
		}
		execProvider, err := providers.NewProvider(backend, cfg.DeviceID)
		if err != nil {
			return err
		}

		var inputImage image.Image
		if cfg.ImagePath != "" {
			inputImage, err = loadImage(cfg.ImagePath)
			if err != nil {
				return err
			}
			logging.Infof("using input image %s", cfg.ImagePath)
		}

		logging.Infof("🚀 ResNet-50 benchmark: provider=%s device=%d batches=%v",
			cfg.Provider, cfg.DeviceID, cfg.BatchSizes)

		factory := func(batchSize int) (inference.Engine, error) {
			classifier, err := resnet50.NewClassifier(resnet50.Config{
				ModelPath:  cfg.ModelPath,
				BatchSize:  batchSize,
				LabelsPath: cfg.LabelsPath,
				Provider:   execProvider,
				Seed:       cfg.Seed,
			})
			if err != nil {
				return nil, err
			}
			if inputImage != nil {
				if err := classifier.BindImage(inputImage); err != nil {
					classifier.Close()
					return nil, err
				}
			} else {
				classifier.RandomizeInput()
			}
			return classifier, nil
		}

		suite := benchmark.NewSuite(factory)
		suite.AddScenarios(benchmark.StandardScenarios(benchmark.StandardArgs{
			BatchSizes:          cfg.BatchSizes,
			OfflineDuration:     cfg.OfflineDuration(),
			ServerSamples:       cfg.ServerSamples,
			SingleStreamSamples: cfg.SingleStreamSamples,
			WarmupRuns:          cfg.WarmupRuns,
		}))

		runErr := suite.RunAll()

		report := benchmark.NewReport(suite.Results())
		if len(report.Results) > 0 {
			path, err := report.Save(cfg.OutputDir)
			if err != nil {
				return err
			}
			logging.Infof("results saved to %s", path)
			report.PrintSummary()

			if best := report.BestThroughput(); best != nil {
				logging.Infof("best throughput: %s (%.1f images/sec)",
					best.Scenario.Name, best.ImagesPerSecond)
			}
		}

		return runErr
	},
}

// resolveConfig layers defaults, an optional config file, and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.ModelPath = modelPath
	}
	if flags.Changed("labels") {
		cfg.LabelsPath = labelsPath
	}
	if flags.Changed("image") {
		cfg.ImagePath = imagePath
	}
	if flags.Changed("provider") {
		cfg.Provider = provider
	}
	if flags.Changed("device") {
		cfg.DeviceID = deviceID
	}
	if flags.Changed("batch-sizes") {
		cfg.BatchSizes = batchSizes
	}
	if flags.Changed("duration") {
		cfg.Duration = durationSec
	}
	if flags.Changed("server-samples") {
		cfg.ServerSamples = serverSamples
	}
	if flags.Changed("single-stream-samples") {
		cfg.SingleStreamSamples = singleStreamSamples
	}
	if flags.Changed("warmup") {
		cfg.WarmupRuns = warmupRuns
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening image %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding image %s", path)
	}
	return img, nil
}

func main() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to a YAML benchmark config")
	rootCmd.Flags().StringVarP(&modelPath, "model", "m", "", "Path to the ResNet-50 ONNX model")
	rootCmd.Flags().StringVar(&labelsPath, "labels", "", "Path to an ImageNet label file")
	rootCmd.Flags().StringVar(&imagePath, "image", "", "Path to an input image (random tensors when unset)")
	rootCmd.Flags().StringVar(&provider, "provider", "cuda", "Execution provider backend (cuda or cpu)")
	rootCmd.Flags().IntVar(&deviceID, "device", 0, "GPU device ID for the cuda provider")
	rootCmd.Flags().IntSliceVar(&batchSizes, "batch-sizes", []int{1, 8, 32}, "Batch sizes to sweep")
	rootCmd.Flags().IntVar(&durationSec, "duration", 30, "Offline run duration in seconds")
	rootCmd.Flags().IntVar(&serverSamples, "server-samples", 1000, "Samples per server run")
	rootCmd.Flags().IntVar(&singleStreamSamples, "single-stream-samples", 500, "Samples for the single-stream run")
	rootCmd.Flags().IntVar(&warmupRuns, "warmup", 10, "Warm-up iterations before each measured run")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "./results", "Output directory for the results document")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for random input generation (0 = time-based)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Only log errors")

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err)
		os.Exit(1)
	}
}
