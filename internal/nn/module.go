// Package nn implements the neural network building blocks used by sparsecode models.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named trainable tensors
//   - Linear: Fully connected layer
//   - Dropout: Stochastic unit dropping with a train/eval switch
//   - LogSoftmax, NLLLoss: Log-probability output and its loss
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/sparsecode/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	// Returns an empty slice for modules without trainable parameters.
	Parameters() []*Parameter[B]
}

// Trainable is implemented by modules whose behavior differs between
// training and evaluation (e.g. Dropout).
type Trainable interface {
	Train(training bool)
	Training() bool
}
