// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package models_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sparsecode/backend/cpu"
	"github.com/born-ml/sparsecode/models"
	"github.com/born-ml/sparsecode/params"
	"github.com/born-ml/sparsecode/tensor"
)

func TestMLPThroughFacade(t *testing.T) {
	env := params.Env{
		Probe:    func() tensor.Device { return tensor.CPU },
		HomeDir:  func() (string, error) { return "/home/test", nil },
		NewRunID: func() string { return "run-1" },
	}
	set, err := params.NewMLPBuilder(env, func(p *params.MLP) error {
		p.LayerChannels = []int{16, 10}
		return nil
	}).Finalize()
	require.NoError(t, err)

	backend := cpu.New()
	m, err := models.New[*cpu.Backend](set, backend)
	require.NoError(t, err)
	m.Train(false)

	x := tensor.Uniform(tensor.Shape{5, 1, 28, 28}, 0, 1, rand.New(rand.NewPCG(1, 1)), backend)
	out := m.Forward(x)
	assert.Equal(t, tensor.Shape{5, 10}, out.Shape())
	assert.Equal(t, 784*16+16+16*10+10, models.CountParameters[*cpu.Backend](m))
}
