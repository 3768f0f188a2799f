// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/sparsecode/backend/cpu"
	"github.com/born-ml/sparsecode/nn"
	"github.com/born-ml/sparsecode/tensor"
)

var _ nn.Module[*cpu.Backend] = (*nn.Linear[*cpu.Backend])(nil)

func TestLinearThroughFacade(t *testing.T) {
	backend := cpu.New()
	fc := nn.NewLinear("fc", 784, 8, rand.New(rand.NewPCG(1, 1)), backend)

	x := tensor.Zeros[float32](tensor.Shape{2, 1, 28, 28}, backend)
	y := fc.Forward(nn.Flatten(x, 784))
	assert.Equal(t, tensor.Shape{2, 8}, y.Shape())
	assert.Len(t, fc.Parameters(), 2)
}
