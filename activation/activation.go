// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package activation resolves activation functions by their configuration names.
//
// Example:
//
//	relu, err := activation.Resolve[*cpu.Backend]("relu")
//	y := relu(x)
//
//	threshold, err := activation.Threshold[*cpu.Backend](activation.ThresholdConfig{
//	    Type: activation.Soft, Rectify: true, SparseThreshold: 0.3,
//	})
package activation

import (
	"github.com/born-ml/sparsecode/internal/activation"
	"github.com/born-ml/sparsecode/tensor"
)

// Registry errors.
var (
	ErrUnknownActivation = activation.ErrUnknownActivation
	ErrNotNullary        = activation.ErrNotNullary
	ErrUnknownThreshType = activation.ErrUnknownThreshType
)

// Name is an activation function name.
type Name = activation.Name

// Supported activation names.
const (
	Identity         = activation.Identity
	ReLU             = activation.ReLU
	LReLU            = activation.LReLU
	LeakyReLU        = activation.LeakyReLU
	LCAThresholdName = activation.LCAThresholdName
)

// Func is an element-wise tensor transformation.
type Func[B tensor.Backend] = activation.Func[B]

// ThreshType selects soft or hard shrinkage.
type ThreshType = activation.ThreshType

// Threshold types.
const (
	Soft = activation.Soft
	Hard = activation.Hard
)

// ThresholdConfig binds the parameters of lca_threshold.
type ThresholdConfig = activation.ThresholdConfig

// Resolve returns the nullary activation registered under name.
func Resolve[B tensor.Backend](name string) (Func[B], error) {
	return activation.Resolve[B](name)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[B tensor.Backend](name string) Func[B] {
	return activation.MustResolve[B](name)
}

// Threshold binds cfg into a nullary lca_threshold function.
func Threshold[B tensor.Backend](cfg ThresholdConfig) (Func[B], error) {
	return activation.Threshold[B](cfg)
}

// LCAThreshold applies soft or hard shrinkage to u.
func LCAThreshold[B tensor.Backend](u *tensor.Tensor[float32, B], threshType ThreshType, rectify bool, sparseThreshold float32) (*tensor.Tensor[float32, B], error) {
	return activation.LCAThreshold(u, threshType, rectify, sparseThreshold)
}

// ParseThreshType validates a threshold type name.
func ParseThreshType(name string) (ThreshType, error) {
	return activation.ParseThreshType(name)
}

// Names returns the sorted names Resolve accepts.
func Names() []string {
	return activation.Names()
}
