// Package resnet50 - ResNet-50 ImageNet classifier on ONNX Runtime.
package resnet50

import (
	"image"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/mlinfra-lab/gpubench/inference"
	"github.com/mlinfra-lab/gpubench/inference/providers"
)

const (
	// InputWidth is the model input width in pixels.
	InputWidth = 224
	// InputHeight is the model input height in pixels.
	InputHeight = 224
	// InputChannels is the number of color channels.
	InputChannels = 3
	// NumClasses is the size of the ImageNet output vector.
	NumClasses = 1000

	// DefaultInputName is the input node name of the torchvision ONNX export.
	DefaultInputName = "input"
	// DefaultOutputName is the output node name of the torchvision ONNX export.
	DefaultOutputName = "output"
)

// Config is the classifier configuration for loading.
type Config struct {
	// ModelPath is the path to the ResNet-50 ONNX model file.
	ModelPath string
	// BatchSize is the batch dimension bound into the session.
	BatchSize int
	// InputName overrides the model's input node name when non-empty.
	InputName string
	// OutputName overrides the model's output node name when non-empty.
	OutputName string
	// LabelsPath optionally points to a newline-separated ImageNet label
	// file. When empty, predictions carry synthetic class_<n> labels.
	LabelsPath string
	// Provider is the execution provider to run on.
	Provider providers.ExecutionProvider
	// Seed seeds the random input generator; zero means time-based.
	Seed int64
}

// Classifier wraps a ResNet-50 session with input binding and postprocess
// helpers. It implements inference.Engine.
type Classifier struct {
	session *inference.Session
	cfg     Config
	labels  []string
	rng     *rand.Rand
}

// NewClassifier loads the model and binds fixed-shape tensors for the
// configured batch size.
func NewClassifier(cfg Config) (*Classifier, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is required")
	}
	if cfg.BatchSize < 1 {
		return nil, errors.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.Provider == nil {
		return nil, errors.New("execution provider is required")
	}
	if cfg.InputName == "" {
		cfg.InputName = DefaultInputName
	}
	if cfg.OutputName == "" {
		cfg.OutputName = DefaultOutputName
	}

	var labels []string
	if cfg.LabelsPath != "" {
		loaded, err := LoadLabels(cfg.LabelsPath)
		if err != nil {
			return nil, errors.Wrap(err, "loading labels")
		}
		labels = loaded
	}

	session, err := inference.NewSession(inference.NewSessionArgs{
		ModelPath:   cfg.ModelPath,
		InputName:   cfg.InputName,
		OutputName:  cfg.OutputName,
		InputShape:  []int64{int64(cfg.BatchSize), InputChannels, InputHeight, InputWidth},
		OutputShape: []int64{int64(cfg.BatchSize), NumClasses},
		Provider:    cfg.Provider,
	})
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Classifier{
		session: session,
		cfg:     cfg,
		labels:  labels,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// RandomizeInput fills the bound input tensor with standard normal noise,
// the same dummy-input strategy the benchmark has always used.
func (c *Classifier) RandomizeInput() {
	FillRandom(c.session.Input.GetData(), c.rng)
}

// BindImage preprocesses img into every batch slot of the bound input.
func (c *Classifier) BindImage(img image.Image) error {
	data := c.session.Input.GetData()
	sampleLen := InputChannels * InputHeight * InputWidth

	sample := make([]float32, sampleLen)
	if err := ImageToTensor(img, sample); err != nil {
		return err
	}
	for b := 0; b < c.cfg.BatchSize; b++ {
		copy(data[b*sampleLen:(b+1)*sampleLen], sample)
	}
	return nil
}

// Infer executes one inference call over the bound input batch.
func (c *Classifier) Infer() error {
	return c.session.Run()
}

// Drain is a no-op: ONNX Runtime's Run returns only after the output tensor
// holds completed results, including on the CUDA provider.
func (c *Classifier) Drain() error {
	return nil
}

// BatchSize returns the batch dimension of the bound input.
func (c *Classifier) BatchSize() int {
	return c.cfg.BatchSize
}

// Info returns the runtime description for reporting.
func (c *Classifier) Info() inference.RuntimeInfo {
	info := inference.RuntimeInfo{
		Backend:   c.cfg.Provider.Backend(),
		ModelPath: c.cfg.ModelPath,
		BatchSize: c.cfg.BatchSize,
	}
	if opts, ok := c.cfg.Provider.Options().(providers.CUDAOptions); ok {
		info.DeviceID = opts.DeviceID
	}
	return info
}

// TopK returns the top k predictions per batch row of the last inference.
func (c *Classifier) TopK(k int) [][]Prediction {
	out := c.session.Output.GetData()
	results := make([][]Prediction, c.cfg.BatchSize)
	for b := 0; b < c.cfg.BatchSize; b++ {
		row := out[b*NumClasses : (b+1)*NumClasses]
		results[b] = TopK(Softmax(row), k, c.labels)
	}
	return results
}

// Close releases the session and tensors.
func (c *Classifier) Close() error {
	return c.session.Close()
}
