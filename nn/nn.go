// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network building blocks models are made of.
//
// Example:
//
//	rng := params.NewRand(1)
//	fc := nn.NewLinear("fc1", 784, 128, rng, backend)
//	y := fc.Forward(nn.Flatten(x, 784))
package nn

import (
	"math/rand/v2"

	"github.com/born-ml/sparsecode/internal/nn"
	"github.com/born-ml/sparsecode/tensor"
)

// Module is a layer with a forward pass and trainable parameters.
type Module[B tensor.Backend] = nn.Module[B]

// Trainable is implemented by modules that behave differently in training.
type Trainable = nn.Trainable

// Parameter is a named trainable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// Linear is a fully connected layer computing x @ W.T + b.
type Linear[B tensor.Backend] = nn.Linear[B]

// Dropout zeroes activations with probability p in training mode.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// LogSoftmax normalizes along one dimension in log space.
type LogSoftmax[B tensor.Backend] = nn.LogSoftmax[B]

// NLLLoss is the mean negative log-likelihood.
type NLLLoss[B tensor.Backend] = nn.NLLLoss[B]

// NewLinear creates a Xavier-initialized linear layer drawing from rng.
func NewLinear[B tensor.Backend](name string, inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(name, inFeatures, outFeatures, rng, backend)
}

// NewDropout creates a dropout layer in training mode.
func NewDropout[B tensor.Backend](p float64, rng *rand.Rand) *Dropout[B] {
	return nn.NewDropout[B](p, rng)
}

// NewLogSoftmax creates a log-softmax over dim.
func NewLogSoftmax[B tensor.Backend](dim int) *LogSoftmax[B] {
	return nn.NewLogSoftmax[B](dim)
}

// NewNLLLoss creates the negative log-likelihood loss.
func NewNLLLoss[B tensor.Backend](backend B) *NLLLoss[B] {
	return nn.NewNLLLoss(backend)
}

// Flatten reshapes input to [batch, features].
func Flatten[B tensor.Backend](input *tensor.Tensor[float32, B], features int) *tensor.Tensor[float32, B] {
	return nn.Flatten(input, features)
}

// Xavier samples a Glorot-uniform tensor.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}
