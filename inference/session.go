// Package inference - ONNX Runtime sessions.
package inference

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/mlinfra-lab/gpubench/inference/providers"
)

var ortInit sync.Once

// initEnvironment loads the native runtime once per process.
func initEnvironment() error {
	var initErr error
	ortInit.Do(func() {
		libPath := providers.GetSharedLibPath()
		if _, err := os.Stat(libPath); os.IsNotExist(err) {
			initErr = errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = errors.Wrap(err, "initializing ORT environment")
		}
	})
	return initErr
}

// Session represents a model session from the onnxruntime with preallocated
// input and output tensors bound for zero-copy reuse across invocations.
type Session struct {
	Session *ort.AdvancedSession
	Input   *ort.Tensor[float32]
	Output  *ort.Tensor[float32]
}

// NewSessionArgs represents the arguments for creating a new session.
type NewSessionArgs struct {
	// The path to the ONNX model file.
	ModelPath string
	// The input node name expected by the model.
	InputName string
	// The output node name expected by the model.
	OutputName string
	// The shape of the input tensor, e.g. [batch, 3, 224, 224].
	InputShape []int64
	// The shape of the output tensor, e.g. [batch, 1000].
	OutputShape []int64
	// The execution provider to register on the session.
	Provider providers.ExecutionProvider
}

// NewSession creates a new ONNX Runtime session.
//
// Order of operations:
//  1. Environment setup: loads the native library once per process.
//  2. Tensor allocation: fixed-shape input/output buffers for reuse.
//  3. Session options: threading and graph optimization level.
//  4. Execution provider registration: CUDA when configured, CPU otherwise.
//  5. Session creation: loads the model and binds the tensors.
func NewSession(args NewSessionArgs) (*Session, error) {
	if err := initEnvironment(); err != nil {
		return nil, err
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(args.InputShape...))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(args.OutputShape...))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrap(err, "creating ORT session options")
	}
	defer options.Destroy()

	// Let the runtime size its own thread pools.
	options.SetIntraOpNumThreads(0)
	options.SetInterOpNumThreads(0)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	if err := args.Provider.Apply(options); err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrapf(err, "registering %s execution provider", args.Provider.Backend())
	}

	session, err := ort.NewAdvancedSession(
		args.ModelPath,
		[]string{args.InputName},
		[]string{args.OutputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		options,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrapf(err, "creating ONNX session for %s", args.ModelPath)
	}

	return &Session{
		Session: session,
		Input:   input,
		Output:  output,
	}, nil
}

// Run executes the session over the bound tensors.
func (s *Session) Run() error {
	return s.Session.Run()
}

// Close releases the resources associated with the Session.
func (s *Session) Close() error {
	if s.Input != nil {
		s.Input.Destroy()
		s.Input = nil
	}
	if s.Output != nil {
		s.Output.Destroy()
		s.Output = nil
	}
	if s.Session != nil {
		if err := s.Session.Destroy(); err != nil {
			return errors.Wrap(err, "destroying ORT session")
		}
		s.Session = nil
	}
	return nil
}
