package cpu

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Reshape returns a view of t with a new shape. Data is shared.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return t.View(newShape)
}

// Transpose permutes the axes of t into a new contiguous tensor.
// Without axes the order is reversed, so a 2D tensor is transposed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: got %d axes for %dD tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid axes %v for %dD tensor", axes, ndim))
		}
		seen[ax] = true
		newShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(newShape, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	srcStrides := t.Strides()
	n := t.NumElements()
	srcIndex := func(flat int) int {
		offset := 0
		for i := ndim - 1; i >= 0; i-- {
			coord := flat % newShape[i]
			flat /= newShape[i]
			offset += coord * srcStrides[axes[i]]
		}
		return offset
	}

	switch t.DType() {
	case tensor.Float32:
		permute(result.AsFloat32(), t.AsFloat32(), n, srcIndex)
	case tensor.Float64:
		permute(result.AsFloat64(), t.AsFloat64(), n, srcIndex)
	case tensor.Int32:
		permute(result.AsInt32(), t.AsInt32(), n, srcIndex)
	case tensor.Int64:
		permute(result.AsInt64(), t.AsInt64(), n, srcIndex)
	case tensor.Bool:
		permute(result.AsBool(), t.AsBool(), n, srcIndex)
	}
	return result
}

func permute[T any](dst, src []T, n int, srcIndex func(int) int) {
	for i := 0; i < n; i++ {
		dst[i] = src[srcIndex(i)]
	}
}
