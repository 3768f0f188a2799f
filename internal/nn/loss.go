package nn

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// NLLLoss computes the mean negative log-likelihood of integer class targets.
//
// Loss = -mean(logProbs[i, targets[i]])
//
// Pair it with LogSoftmax. Targets are class indices in [0, num_classes).
type NLLLoss[B tensor.Backend] struct {
	backend B
}

// NewNLLLoss creates a new NLL loss function.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return &NLLLoss[B]{backend: backend}
}

// Forward computes the loss.
//
// Parameters:
//   - logProbs: Log-probabilities with shape [batch_size, num_classes]
//   - targets: Class indices with shape [batch_size]
//
// Returns a scalar (0-D) loss tensor.
func (n *NLLLoss[B]) Forward(logProbs *tensor.Tensor[float32, B], targets *tensor.Tensor[int32, B]) *tensor.Tensor[float32, B] {
	shape := logProbs.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("NLLLoss: expected 2D log-probabilities [batch, classes], got %v", shape))
	}
	batch, classes := shape[0], shape[1]
	if !targets.Shape().Equal(tensor.Shape{batch}) {
		panic(fmt.Sprintf("NLLLoss: expected targets of shape [%d], got %v", batch, targets.Shape()))
	}

	lp := logProbs.Data()
	var sum float64
	for i, c := range targets.Data() {
		if c < 0 || int(c) >= classes {
			panic(fmt.Sprintf("NLLLoss: target %d at index %d out of range [0, %d)", c, i, classes))
		}
		sum -= float64(lp[i*classes+int(c)])
	}

	return tensor.Scalar(float32(sum/float64(batch)), n.backend)
}
