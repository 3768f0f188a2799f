package nn

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Flatten reshapes input to [batch, features], keeping the leading dimension
// as the batch. A 1D input of length features is treated as a batch of one.
//
// Panics if the trailing dimensions do not multiply to features.
func Flatten[B tensor.Backend](input *tensor.Tensor[float32, B], features int) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	switch {
	case len(shape) == 1 && shape[0] == features:
		return input.Reshape(1, features)
	case len(shape) >= 2 && shape[1:].NumElements() == features:
		return input.Reshape(shape[0], features)
	default:
		panic(fmt.Sprintf("Flatten: input shape %v does not flatten to [batch, %d]", shape, features))
	}
}

// LogSoftmax applies log(softmax(x)) along a fixed dimension.
type LogSoftmax[B tensor.Backend] struct {
	dim int
}

// NewLogSoftmax creates a LogSoftmax module over dim.
func NewLogSoftmax[B tensor.Backend](dim int) *LogSoftmax[B] {
	return &LogSoftmax[B]{dim: dim}
}

// Forward computes log-probabilities along the configured dimension.
func (l *LogSoftmax[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.LogSoftmax(input.Raw(), l.dim), backend)
}

// Parameters returns nil (LogSoftmax has no trainable parameters).
func (l *LogSoftmax[B]) Parameters() []*Parameter[B] {
	return nil
}
