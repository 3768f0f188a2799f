package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Dropout zeroes each element with probability p during training and scales
// the survivors by 1/(1-p). In evaluation mode it is the identity.
//
// Modules start in training mode.
type Dropout[B tensor.Backend] struct {
	p        float64
	rng      *rand.Rand
	training bool
}

// NewDropout creates a Dropout module drawing its masks from rng.
// Panics if p is outside [0, 1].
func NewDropout[B tensor.Backend](p float64, rng *rand.Rand) *Dropout[B] {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("Dropout: probability must be in [0, 1], got %v", p))
	}
	return &Dropout[B]{p: p, rng: rng, training: true}
}

// Forward applies the dropout mask in training mode.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.p == 0 {
		return input
	}

	backend := input.Backend()
	mask := tensor.Zeros[float32](input.Shape(), backend)
	if d.p < 1 {
		scale := float32(1 / (1 - d.p))
		data := mask.Data()
		for i := range data {
			if d.rng.Float64() >= d.p {
				data[i] = scale
			}
		}
	}
	return input.Mul(mask)
}

// Parameters returns nil (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}

// Train switches between training (true) and evaluation (false) mode.
func (d *Dropout[B]) Train(training bool) {
	d.training = training
}

// Training reports whether the module is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// P returns the drop probability.
func (d *Dropout[B]) P() float64 {
	return d.p
}
