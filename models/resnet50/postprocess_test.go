package resnet50

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftmaxSumsToOne(t *testing.T) {
	probs := Softmax([]float32{1.0, 2.0, 3.0, 4.0})

	var sum float32
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-5)
}

func TestSoftmaxOrderingPreserved(t *testing.T) {
	probs := Softmax([]float32{0.5, 3.0, -1.0})

	assert.Greater(t, probs[1], probs[0])
	assert.Greater(t, probs[0], probs[2])
}

func TestSoftmaxLargeLogitsStable(t *testing.T) {
	// Without max subtraction these would overflow float32.
	probs := Softmax([]float32{100, 101, 102})

	var sum float32
	for _, p := range probs {
		assert.False(t, p != p, "probability is NaN")
		sum += p
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-5)
}

func TestSoftmaxEmpty(t *testing.T) {
	assert.Nil(t, Softmax(nil))
}

func TestTopKOrdering(t *testing.T) {
	probs := []float32{0.1, 0.5, 0.05, 0.3, 0.05}

	preds := TopK(probs, 3, nil)

	require.Len(t, preds, 3)
	assert.Equal(t, 1, preds[0].Index)
	assert.Equal(t, 3, preds[1].Index)
	assert.Equal(t, 0, preds[2].Index)
	assert.Equal(t, "class_1", preds[0].Label)
}

func TestTopKWithLabels(t *testing.T) {
	labels := []string{"tench", "goldfish", "great white shark"}
	probs := []float32{0.2, 0.7, 0.1}

	preds := TopK(probs, 2, labels)

	require.Len(t, preds, 2)
	assert.Equal(t, "goldfish", preds[0].Label)
	assert.Equal(t, "tench", preds[1].Label)
}

func TestTopKClampsK(t *testing.T) {
	preds := TopK([]float32{0.6, 0.4}, 10, nil)
	assert.Len(t, preds, 2)
}

func TestTopKTiesBreakTowardLowerIndex(t *testing.T) {
	preds := TopK([]float32{0.25, 0.25, 0.5}, 3, nil)

	assert.Equal(t, 2, preds[0].Index)
	assert.Equal(t, 0, preds[1].Index)
	assert.Equal(t, 1, preds[2].Index)
}
