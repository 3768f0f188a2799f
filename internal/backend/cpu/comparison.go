package cpu

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Comparison operations - return bool tensors.

// Greater returns a > b element-wise.
func (cpu *CPUBackend) Greater(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greater", a, b, func(x, y float32) bool { return x > y })
}

// GreaterEqual returns a >= b element-wise.
func (cpu *CPUBackend) GreaterEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("greaterEqual", a, b, func(x, y float32) bool { return x >= y })
}

// LowerEqual returns a <= b element-wise.
func (cpu *CPUBackend) LowerEqual(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.compare("lowerEqual", a, b, func(x, y float32) bool { return x <= y })
}

func (cpu *CPUBackend) compare(op string, a, b *tensor.RawTensor, fn func(x, y float32) bool) *tensor.RawTensor {
	requireFloat32(op, a, b)

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Bool, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	out, aData, bData := result.AsBool(), a.AsFloat32(), b.AsFloat32()
	aShape, bShape := a.Shape(), b.Shape()
	for i := range out {
		out[i] = fn(aData[tensor.BroadcastIndex(i, outShape, aShape)], bData[tensor.BroadcastIndex(i, outShape, bShape)])
	}
	return result
}

// Where performs conditional element selection: result[i] = condition[i] ? x[i] : y[i].
// The condition, x and y are broadcast against each other.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", condition.DType()))
	}
	requireFloat32("where", x, y)

	outShape1, _, err := tensor.BroadcastShapes(condition.Shape(), x.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast condition and x: %v", err))
	}
	outShape, _, err := tensor.BroadcastShapes(outShape1, y.Shape())
	if err != nil {
		panic(fmt.Sprintf("where: failed to broadcast with y: %v", err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("where: failed to create result tensor: %v", err))
	}

	out := result.AsFloat32()
	cond, xData, yData := condition.AsBool(), x.AsFloat32(), y.AsFloat32()
	cShape, xShape, yShape := condition.Shape(), x.Shape(), y.Shape()
	for i := range out {
		if cond[tensor.BroadcastIndex(i, outShape, cShape)] {
			out[i] = xData[tensor.BroadcastIndex(i, outShape, xShape)]
		} else {
			out[i] = yData[tensor.BroadcastIndex(i, outShape, yShape)]
		}
	}
	return result
}
