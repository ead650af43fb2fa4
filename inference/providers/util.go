// Package providers - Utility functions.
package providers

import (
	"os"
	"runtime"
)

// SharedLibEnvVar overrides the ONNX Runtime shared library location when
// set. Container images place the library under /usr/lib by convention;
// local development trees keep it under third_party/.
const SharedLibEnvVar = "ONNXRUNTIME_SHARED_LIBRARY_PATH"

// GetSharedLibPath returns the path to the ONNX Runtime shared library for
// the current platform.
func GetSharedLibPath() string {
	if path := os.Getenv(SharedLibEnvVar); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		if runtime.GOARCH == "amd64" {
			return "third_party/onnxruntime.dll"
		}
	}
	if runtime.GOOS == "darwin" {
		return "third_party/libonnxruntime.dylib"
	}
	if runtime.GOOS == "linux" {
		if runtime.GOARCH == "arm64" {
			return "third_party/onnxruntime_arm64.so"
		}
		return "third_party/onnxruntime.so"
	}
	panic("Unable to find a version of the onnxruntime library supporting this system.")
}
