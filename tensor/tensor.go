// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public tensor API of sparsecode.
//
// The package defines the types models are written against:
//   - Tensor[T, B]: generic tensor bound to a compute backend
//   - RawTensor: untyped contiguous storage
//   - Backend: the operation contract a compute backend implements
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := x.AddScalar(1).Exp()
package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// DType is a constraint for tensor element types.
type DType = tensor.DType

// DataType identifies the element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Bool    DataType = tensor.Bool
)

// Device identifies where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape lists tensor dimensions, outermost first.
type Shape = tensor.Shape

// RawTensor is the untyped tensor representation backends operate on.
type RawTensor = tensor.RawTensor

// Backend is the operation contract of a compute backend.
type Backend = tensor.Backend

// Tensor is a typed tensor bound to backend B.
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// NewRaw allocates zeroed raw storage.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice(data, shape, b)
}

// Zeros returns a zero-filled tensor.
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T](shape, b)
}

// Full returns a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full(shape, value, b)
}

// Uniform samples from [low, high) using rng.
func Uniform[B Backend](shape Shape, low, high float64, rng *rand.Rand, b B) *Tensor[float32, B] {
	return tensor.Uniform(shape, low, high, rng, b)
}

// Randn samples from the standard normal distribution using rng.
func Randn[B Backend](shape Shape, rng *rand.Rand, b B) *Tensor[float32, B] {
	return tensor.Randn(shape, rng, b)
}
