// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package params_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sparsecode/params"
	"github.com/born-ml/sparsecode/tensor"
)

func testEnv() params.Env {
	return params.Env{
		Probe:    func() tensor.Device { return tensor.CPU },
		HomeDir:  func() (string, error) { return "/home/test", nil },
		NewRunID: func() string { return "run-1" },
	}
}

func TestEnsembleThroughFacade(t *testing.T) {
	e, err := params.LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)
	assert.Equal(t, params.ModelEnsemble, e.Kind())
	for _, m := range e.Members {
		assert.Equal(t, 50, m.SharedParams().BatchSize)
	}
}

func TestCustomEnsembleThroughFacade(t *testing.T) {
	env := testEnv()
	shared := params.MNISTShared()
	shared.BatchSize = 8

	lca := params.NewLCABuilder(env, params.LCAMNIST, params.SharedLayer[params.LCA](shared))
	mlp := params.NewMLPBuilder(env,
		params.MLPMNIST,
		func(p *params.MLP) error { p.DropoutRate = []float64{0.2}; return nil },
		params.SharedLayer[params.MLP](shared),
	)
	e, err := params.NewEnsembleBuilder(env, shared, lca, mlp).Finalize()
	require.NoError(t, err)

	assert.Equal(t, 8, e.BatchSize)
	got, ok := e.Member(params.ModelMLP)
	require.True(t, ok)
	assert.Equal(t, 0.2, got.(params.MLP).Dropout())
}

func TestBaseLayerThroughFacade(t *testing.T) {
	b := params.NewMLPBuilder(testEnv())
	b.With(params.BaseLayer[params.MLP](testEnv()))

	// BaseLayer resets model_type, so using it last fails validation.
	_, err := b.Finalize()
	assert.ErrorIs(t, err, params.ErrInvalidField)
}
