package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/sparsecode/internal/parallel"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// LeakyReLU applies x for x > 0 and slope*x otherwise.
func (cpu *CPUBackend) LeakyReLU(x *tensor.RawTensor, slope float32) *tensor.RawTensor {
	return cpu.unary("leakyRelu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return slope * v
	})
}

// LogSoftmax computes log(softmax(x)) along dim using the max-shift
// log-sum-exp form for numerical stability. Negative dims count from the end.
func (cpu *CPUBackend) LogSoftmax(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	requireFloat32("logSoftmax", x)

	shape := x.Shape()
	if dim < 0 {
		dim += len(shape)
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("logSoftmax: dim %d out of range for shape %v", dim, shape))
	}

	result, err := tensor.NewRaw(shape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("logSoftmax: %v", err))
	}

	size := shape[dim]
	inner := x.Strides()[dim]
	outer := x.NumElements() / (size * inner)
	in, out := x.AsFloat32(), result.AsFloat32()

	// Each (outer, inner) pair is an independent row along dim.
	rowCfg := cpu.parallel
	rowCfg.MinChunkSize = max(1, rowCfg.MinChunkSize/size)
	parallel.Range(outer*inner, rowCfg, func(start, end int) {
		for r := start; r < end; r++ {
			base := (r/inner)*size*inner + r%inner

			maxVal := math.Inf(-1)
			for j := 0; j < size; j++ {
				maxVal = math.Max(maxVal, float64(in[base+j*inner]))
			}

			var sum float64
			for j := 0; j < size; j++ {
				sum += math.Exp(float64(in[base+j*inner]) - maxVal)
			}
			logSum := maxVal + math.Log(sum)

			for j := 0; j < size; j++ {
				out[base+j*inner] = float32(float64(in[base+j*inner]) - logSum)
			}
		}
	})
	return result
}
