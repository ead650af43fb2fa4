package resnet50

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
)

// Prediction is one class score after softmax.
type Prediction struct {
	// Index is the ImageNet class index.
	Index int `json:"index"`
	// Label is the human-readable class name, or class_<n> when no label
	// file was loaded.
	Label string `json:"label"`
	// Score is the softmax probability.
	Score float32 `json:"score"`
}

// Softmax converts a row of logits into probabilities. The maximum logit is
// subtracted first so the exponentials cannot overflow float32.
func Softmax(logits []float32) []float32 {
	if len(logits) == 0 {
		return nil
	}

	max := logits[0]
	for _, v := range logits[1:] {
		if v > max {
			max = v
		}
	}

	probs := make([]float32, len(logits))
	var sum float32
	for i, v := range logits {
		probs[i] = math32.Exp(v - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// TopK returns the k highest-scoring predictions in descending score order.
// Ties break toward the lower class index.
func TopK(probs []float32, k int, labels []string) []Prediction {
	indices := make([]int, len(probs))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return probs[indices[a]] > probs[indices[b]]
	})

	if k > len(indices) {
		k = len(indices)
	}
	preds := make([]Prediction, 0, k)
	for _, idx := range indices[:k] {
		preds = append(preds, Prediction{
			Index: idx,
			Label: labelFor(labels, idx),
			Score: probs[idx],
		})
	}
	return preds
}

func labelFor(labels []string, idx int) string {
	if idx >= 0 && idx < len(labels) {
		return labels[idx]
	}
	return fmt.Sprintf("class_%d", idx)
}
