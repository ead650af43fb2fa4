// Package inference - Inference engine surface consumed by the benchmark.
package inference

import "github.com/mlinfra-lab/gpubench/inference/providers"

// RuntimeInfo describes the runtime a benchmark run executed against. It is
// carried into the results document so numbers stay attributable to the
// hardware path that produced them.
type RuntimeInfo struct {
	// Backend is the execution provider backend in use.
	Backend providers.ProviderBackend `json:"backend"`
	// DeviceID is the accelerator device index, meaningful for GPU backends.
	DeviceID int `json:"device_id"`
	// ModelPath is the path of the loaded model.
	ModelPath string `json:"model_path"`
	// BatchSize is the batch dimension of the bound input tensor.
	BatchSize int `json:"batch_size"`
}

// Engine is one loaded model ready to execute inference on a bound input.
// Implementations are not safe for concurrent use; the benchmark invokes
// them strictly sequentially.
type Engine interface {
	// Infer executes one inference call over the bound input batch.
	Infer() error
	// Drain flushes any outstanding asynchronous device work. ONNX Runtime
	// executes Run synchronously, so the classifier's Drain is a no-op; the
	// method exists so warm-up and duration runs can rely on a drained
	// device regardless of runtime.
	Drain() error
	// BatchSize returns the batch dimension of the bound input.
	BatchSize() int
	// Info returns the runtime description for reporting.
	Info() RuntimeInfo
	// Close releases the session and tensors.
	Close() error
}
