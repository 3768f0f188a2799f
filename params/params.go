// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package params builds finalized model configurations.
//
// Configurations are assembled from ordered layers and finalized once:
//
//	env := params.DefaultEnv()
//	ensemble, err := params.LCAMLPMNIST(env, nil)
//
// Custom sets start from a model builder and add layers; later layers win,
// and a shared layer placed last wins over everything before it:
//
//	mlp, err := params.NewMLPBuilder(env,
//	    func(p *params.MLP) error { p.DropoutRate = []float64{0.2}; return nil },
//	    params.SharedLayer[params.MLP](params.MNISTShared()),
//	).Finalize()
package params

import (
	"math/rand/v2"

	"github.com/born-ml/sparsecode/internal/params"
)

// Errors returned by Finalize.
var (
	ErrMissingField = params.ErrMissingField
	ErrInvalidField = params.ErrInvalidField
	ErrModelType    = params.ErrModelType
)

// ModelType tags which model a set configures.
type ModelType = params.ModelType

// Model types.
const (
	ModelMLP      = params.ModelMLP
	ModelLCA      = params.ModelLCA
	ModelEnsemble = params.ModelEnsemble
)

// DefaultRandSeed seeds every set unless a layer overrides it.
const DefaultRandSeed = params.DefaultRandSeed

type (
	// Set is a finalized parameter set.
	Set = params.Set
	// Base holds the universal fields.
	Base = params.Base
	// Shared holds the fields shared across an ensemble.
	Shared = params.Shared
	// Optimizer describes the optimizer and its learning-rate schedule.
	Optimizer = params.Optimizer
	// LCA configures the sparse-coding model.
	LCA = params.LCA
	// MLP configures the perceptron classifier.
	MLP = params.MLP
	// Ensemble aggregates member sets.
	Ensemble = params.Ensemble
	// Env supplies host facts to the base layer.
	Env = params.Env
	// Overrides holds YAML overrides.
	Overrides = params.Overrides
	// SetBuilder produces a finalized Set.
	SetBuilder = params.SetBuilder
	// Preset builds a named configuration.
	Preset = params.Preset
)

// Layer writes raw fields onto a draft.
type Layer[T any] = params.Layer[T]

// Builders for each model type.
type (
	LCABuilder      = params.Builder[params.LCA, *params.LCA]
	MLPBuilder      = params.Builder[params.MLP, *params.MLP]
	EnsembleBuilder = params.Builder[params.Ensemble, *params.Ensemble]
)

// Supported optimizer names.
const (
	OptimizerSGD  = params.OptimizerSGD
	OptimizerAdam = params.OptimizerAdam
)

// DefaultEnv probes for an accelerator and reads the real home directory.
func DefaultEnv() Env {
	return params.DefaultEnv()
}

// NewRand returns a generator seeded deterministically from seed.
func NewRand(seed int64) *rand.Rand {
	return params.NewRand(seed)
}

// BaseHolder and SharedHolder are implemented by pointers to every set type.
type (
	BaseHolder   = params.BaseHolder
	SharedHolder = params.SharedHolder
)

// BaseLayer writes the universal defaults.
func BaseLayer[T any, P interface {
	*T
	BaseHolder
}](env Env) Layer[T] {
	return params.BaseLayer[T, P](env)
}

// SharedLayer overwrites the receiving set's shared fragment with s.
func SharedLayer[T any, P interface {
	*T
	SharedHolder
}](s Shared) Layer[T] {
	return params.SharedLayer[T, P](s)
}

// NewLCABuilder returns a builder with the base and LCA defaults applied first.
func NewLCABuilder(env Env, layers ...Layer[LCA]) *LCABuilder {
	return params.NewLCABuilder(env, layers...)
}

// NewMLPBuilder returns a builder with the base and MLP defaults applied first.
func NewMLPBuilder(env Env, layers ...Layer[MLP]) *MLPBuilder {
	return params.NewMLPBuilder(env, layers...)
}

// NewEnsembleBuilder returns a builder that finalizes members in order and
// overlays shared on the ensemble.
func NewEnsembleBuilder(env Env, shared Shared, members ...SetBuilder) *EnsembleBuilder {
	return params.NewEnsembleBuilder(env, shared, members...)
}

// MNISTShared is the shared fragment of the lca_mlp_mnist ensemble.
func MNISTShared() Shared {
	return params.MNISTShared()
}

// LCAMNIST and MLPMNIST are the member layers of the lca_mlp_mnist ensemble.
var (
	LCAMNIST Layer[LCA] = params.LCAMNIST
	MLPMNIST Layer[MLP] = params.MLPMNIST
)

// LCAMLPMNIST assembles the lca + mlp MNIST ensemble. Overrides may be nil.
func LCAMLPMNIST(env Env, overrides *Overrides) (Ensemble, error) {
	return params.LCAMLPMNIST(env, overrides)
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, error) {
	return params.LookupPreset(name)
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	return params.PresetNames()
}

// LoadOverrides reads a YAML overrides document from path.
func LoadOverrides(path string) (*Overrides, error) {
	return params.LoadOverrides(path)
}

// ParseOverrides decodes a YAML overrides document.
func ParseOverrides(data []byte) (*Overrides, error) {
	return params.ParseOverrides(data)
}

// Snapshot renders a finalized set as YAML.
func Snapshot(set Set) ([]byte, error) {
	return params.Snapshot(set)
}
