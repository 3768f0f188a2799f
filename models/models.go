// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package models builds runnable models from finalized parameter sets.
//
// Example:
//
//	ensemble, _ := params.LCAMLPMNIST(params.DefaultEnv(), nil)
//	set, _ := ensemble.Member(params.ModelMLP)
//	model, err := models.New[*cpu.Backend](set, cpu.New())
//	logProbs := model.Forward(images)
package models

import (
	"github.com/born-ml/sparsecode/internal/models"
	"github.com/born-ml/sparsecode/internal/nn"
	"github.com/born-ml/sparsecode/params"
	"github.com/born-ml/sparsecode/tensor"
)

// Model errors.
var (
	ErrUnregisteredModel = models.ErrUnregisteredModel
	ErrParamsType        = models.ErrParamsType
)

// Model is a network configured from a finalized parameter set.
type Model[B tensor.Backend] = models.Model[B]

// LossInput carries the operands of Model.Loss.
type LossInput[B tensor.Backend] = models.LossInput[B]

// Constructor returns an unconfigured model bound to a backend.
type Constructor[B tensor.Backend] = models.Constructor[B]

// Registry maps model types to constructors.
type Registry[B tensor.Backend] = models.Registry[B]

// MLP is the single-hidden-layer perceptron classifier.
type MLP[B tensor.Backend] = models.MLP[B]

// Parameter is a named trainable tensor.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewRegistry returns a registry holding the built-in models.
func NewRegistry[B tensor.Backend]() *Registry[B] {
	return models.NewRegistry[B]()
}

// New constructs and sets up the built-in model registered for set.
func New[B tensor.Backend](set params.Set, backend B) (Model[B], error) {
	return models.New(set, backend)
}

// NewMLP returns an MLP that still needs SetupModel.
func NewMLP[B tensor.Backend](backend B) *MLP[B] {
	return models.NewMLP(backend)
}

// CountParameters returns the number of scalar parameters held by m.
func CountParameters[B tensor.Backend](m interface{ Parameters() []*Parameter[B] }) int {
	return models.CountParameters[B](m)
}
