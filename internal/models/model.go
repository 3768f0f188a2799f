// Package models defines the model contract and the models configured by
// package params.
package models

import (
	"errors"
	"fmt"
	"sort"

	"github.com/born-ml/sparsecode/internal/nn"
	"github.com/born-ml/sparsecode/internal/params"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// Model errors.
var (
	ErrUnregisteredModel = errors.New("models: no model registered for type")
	ErrParamsType        = errors.New("models: parameter set does not match model")
)

// LossInput carries the operands of Model.Loss.
type LossInput[B tensor.Backend] struct {
	Prediction *tensor.Tensor[float32, B]
	Target     *tensor.Tensor[int32, B]
}

// Model is a network configured from a finalized parameter set.
//
// SetupModel allocates every layer from the set; calling it again discards
// the previous layers. The model keeps a copy of the set but never alters it.
type Model[B tensor.Backend] interface {
	SetupModel(set params.Set) error
	Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
	Loss(in LossInput[B]) *tensor.Tensor[float32, B]
	Train(training bool)
	Training() bool
	Parameters() []*nn.Parameter[B]
}

// Constructor returns an unconfigured model bound to backend.
type Constructor[B tensor.Backend] func(backend B) Model[B]

// Registry maps model types to constructors.
type Registry[B tensor.Backend] struct {
	ctors map[params.ModelType]Constructor[B]
}

// NewRegistry returns a registry holding the built-in models.
func NewRegistry[B tensor.Backend]() *Registry[B] {
	r := &Registry[B]{ctors: make(map[params.ModelType]Constructor[B])}
	r.Register(params.ModelMLP, func(backend B) Model[B] { return NewMLP(backend) })
	return r
}

// Register adds or replaces the constructor for kind.
func (r *Registry[B]) Register(kind params.ModelType, ctor Constructor[B]) {
	r.ctors[kind] = ctor
}

// Kinds returns the registered model types in sorted order.
func (r *Registry[B]) Kinds() []params.ModelType {
	kinds := make([]params.ModelType, 0, len(r.ctors))
	for k := range r.ctors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New constructs the model registered for set.Kind() and sets it up.
func (r *Registry[B]) New(set params.Set, backend B) (Model[B], error) {
	ctor, ok := r.ctors[set.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnregisteredModel, set.Kind())
	}
	m := ctor(backend)
	if err := m.SetupModel(set); err != nil {
		return nil, err
	}
	return m, nil
}

// New constructs a built-in model for set.
func New[B tensor.Backend](set params.Set, backend B) (Model[B], error) {
	return NewRegistry[B]().New(set, backend)
}

// CountParameters returns the number of scalar parameters held by m.
func CountParameters[B tensor.Backend](m interface{ Parameters() []*nn.Parameter[B] }) int {
	total := 0
	for _, p := range m.Parameters() {
		total += p.NumElements()
	}
	return total
}
