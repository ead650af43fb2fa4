// Package providers - Execution provider selection for ONNX Runtime.
package providers

import (
	"fmt"

	ort "github.com/yalue/onnxruntime_go"
)

// ProviderBackend identifies an ONNX Runtime execution provider.
type ProviderBackend string

const (
	// CPUProviderBackend runs inference on the default CPU provider.
	CPUProviderBackend ProviderBackend = "cpu"
	// CUDAProviderBackend runs inference on an NVIDIA GPU through CUDA.
	CUDAProviderBackend ProviderBackend = "cuda"
)

// ParseBackend maps a configuration string to a ProviderBackend.
func ParseBackend(s string) (ProviderBackend, error) {
	switch ProviderBackend(s) {
	case CPUProviderBackend:
		return CPUProviderBackend, nil
	case CUDAProviderBackend:
		return CUDAProviderBackend, nil
	default:
		return "", fmt.Errorf("unknown execution provider backend: %q", s)
	}
}

// ProviderOptions is a marker interface for provider-specific config.
type ProviderOptions interface {
	isProviderOptions()
}

// ExecutionProvider pairs a backend with its options.
type ExecutionProvider interface {
	// Backend returns the backend identifier.
	Backend() ProviderBackend
	// Options returns the provider-specific options.
	Options() ProviderOptions
	// Apply appends the provider to the given session options.
	Apply(options *ort.SessionOptions) error
}

// NewProvider constructs the execution provider for a backend. The device ID
// is passed explicitly so callers never depend on an ambient current-device
// context.
func NewProvider(backend ProviderBackend, deviceID int) (ExecutionProvider, error) {
	switch backend {
	case CPUProviderBackend:
		return NewCPUProvider(), nil
	case CUDAProviderBackend:
		return NewCUDAProvider(CUDAOptions{DeviceID: deviceID}), nil
	default:
		return nil, fmt.Errorf("unknown execution provider backend: %q", backend)
	}
}
