package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/sparsecode/internal/parallel"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unary("addScalar", x, func(v float32) float32 { return v + scalar })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	return cpu.unary("mulScalar", x, func(v float32) float32 { return v * scalar })
}

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, func(v float32) float32 { return float32(math.Exp(float64(v))) })
}

func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, fn func(v float32) float32) *tensor.RawTensor {
	requireFloat32(op, x)

	result, err := tensor.NewRaw(x.Shape(), tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	out, in := result.AsFloat32(), x.AsFloat32()
	parallel.Range(len(in), cpu.parallel, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(in[i])
		}
	})
	return result
}
