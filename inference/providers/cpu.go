// Package providers - CPU based execution provider.
package providers

import (
	ort "github.com/yalue/onnxruntime_go"
)

// CPUProvider implements the ExecutionProvider interface. The CPU provider
// is the runtime default and needs no explicit registration.
type CPUProvider struct {
	options CPUOptions
}

// CPUOptions contains arguments for the CPU provider.
type CPUOptions struct{}

// isProviderOptions is a marker function to ensure the options are valid.
func (CPUOptions) isProviderOptions() {}

// Backend returns the backend of the CPU provider.
func (p *CPUProvider) Backend() ProviderBackend {
	return CPUProviderBackend
}

// Options returns the options of the CPU provider.
func (p *CPUProvider) Options() ProviderOptions {
	return p.options
}

// Apply is a no-op; the runtime falls back to CPU when no other provider is
// registered.
func (p *CPUProvider) Apply(options *ort.SessionOptions) error {
	return nil
}

// NewCPUProvider creates a new CPU provider.
func NewCPUProvider() *CPUProvider {
	return &CPUProvider{}
}
