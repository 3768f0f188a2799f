// Package cpu implements the CPU backend for sparsecode tensors.
package cpu

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/parallel"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// CPUBackend implements tensor operations on the host CPU.
// Element-wise and row-wise ops split large tensors across goroutines.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with one worker per CPU.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend that splits work according to cfg.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with NumPy-style broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with NumPy-style broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// binary applies fn over the broadcast of a and b. Only float32 is supported.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor, fn func(x, y float32) float32) *tensor.RawTensor {
	requireFloat32(op, a, b)

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	out, aData, bData := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()
	if !needsBroadcast {
		parallel.Range(len(out), cpu.parallel, func(start, end int) {
			for i := start; i < end; i++ {
				out[i] = fn(aData[i], bData[i])
			}
		})
		return result
	}

	aShape, bShape := a.Shape(), b.Shape()
	parallel.Range(len(out), cpu.parallel, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(aData[tensor.BroadcastIndex(i, outShape, aShape)], bData[tensor.BroadcastIndex(i, outShape, bShape)])
		}
	})
	return result
}

func requireFloat32(op string, ts ...*tensor.RawTensor) {
	for _, t := range ts {
		if t.DType() != tensor.Float32 {
			panic(fmt.Sprintf("%s: unsupported dtype %s (only float32 supported)", op, t.DType()))
		}
	}
}
