package resnet50

import (
	"image"
	"math/rand"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ImageNet channel statistics used by torchvision's ResNet-50.
var (
	channelMean = [InputChannels]float32{0.485, 0.456, 0.406}
	channelStd  = [InputChannels]float32{0.229, 0.224, 0.225}
)

// FillRandom fills dst with standard normal samples. Random inputs keep the
// benchmark independent of an image corpus while exercising the same compute
// path as real frames.
func FillRandom(dst []float32, rng *rand.Rand) {
	for i := range dst {
		dst[i] = float32(rng.NormFloat64())
	}
}

// ImageToTensor resizes img to the model input size and writes it into dst
// in planar CHW layout, normalized with the ImageNet mean and standard
// deviation. dst must hold exactly one sample (3*224*224 values).
func ImageToTensor(img image.Image, dst []float32) error {
	sampleLen := InputChannels * InputHeight * InputWidth
	if len(dst) != sampleLen {
		return errors.Errorf("destination length %d, want %d", len(dst), sampleLen)
	}

	resized := resize.Resize(InputWidth, InputHeight, img, resize.Bilinear)
	bounds := resized.Bounds()

	plane := InputHeight * InputWidth
	for y := 0; y < InputHeight; y++ {
		for x := 0; x < InputWidth; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels; scale to [0, 1] before
			// normalizing.
			idx := y*InputWidth + x
			dst[idx] = (float32(r)/65535.0 - channelMean[0]) / channelStd[0]
			dst[plane+idx] = (float32(g)/65535.0 - channelMean[1]) / channelStd[1]
			dst[2*plane+idx] = (float32(b)/65535.0 - channelMean[2]) / channelStd[2]
		}
	}
	return nil
}
