package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	backend, err := ParseBackend("cuda")
	require.NoError(t, err)
	assert.Equal(t, CUDAProviderBackend, backend)

	backend, err = ParseBackend("cpu")
	require.NoError(t, err)
	assert.Equal(t, CPUProviderBackend, backend)

	_, err = ParseBackend("tpu")
	assert.Error(t, err)
}

func TestNewProviderBackends(t *testing.T) {
	cpu, err := NewProvider(CPUProviderBackend, 0)
	require.NoError(t, err)
	assert.Equal(t, CPUProviderBackend, cpu.Backend())

	cuda, err := NewProvider(CUDAProviderBackend, 1)
	require.NoError(t, err)
	assert.Equal(t, CUDAProviderBackend, cuda.Backend())

	opts, ok := cuda.Options().(CUDAOptions)
	require.True(t, ok)
	assert.Equal(t, 1, opts.DeviceID)

	_, err = NewProvider(ProviderBackend("tpu"), 0)
	assert.Error(t, err)
}
