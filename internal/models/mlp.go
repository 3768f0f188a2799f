package models

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/activation"
	"github.com/born-ml/sparsecode/internal/nn"
	"github.com/born-ml/sparsecode/internal/params"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// MLP is a single-hidden-layer perceptron classifier.
//
// Architecture:
//   - Input: num_pixels features, flattened from any trailing shape
//   - Hidden: num_latent units, leaky ReLU, dropout
//   - Output: num_classes log-probabilities
type MLP[B tensor.Backend] struct {
	backend  B
	params   params.MLP
	training bool

	fc1        *nn.Linear[B]
	act        activation.Func[B]
	dropout    *nn.Dropout[B]
	fc2        *nn.Linear[B]
	logSoftmax *nn.LogSoftmax[B]
	loss       *nn.NLLLoss[B]
}

// NewMLP returns an MLP that still needs SetupModel. It starts in training mode.
func NewMLP[B tensor.Backend](backend B) *MLP[B] {
	return &MLP[B]{backend: backend, training: true}
}

// SetupModel allocates the layers described by set, which must be a params.MLP.
// Weights are drawn from the set's generator.
func (m *MLP[B]) SetupModel(set params.Set) error {
	var p params.MLP
	switch s := set.(type) {
	case params.MLP:
		p = s
	case *params.MLP:
		p = *s
	default:
		return fmt.Errorf("%w: mlp needs params.MLP, got %T", ErrParamsType, set)
	}
	if p.Rand == nil {
		return fmt.Errorf("%w: mlp parameters are not finalized", ErrParamsType)
	}

	act, err := activation.Resolve[B](string(activation.LeakyReLU))
	if err != nil {
		return err
	}

	m.params = p
	m.fc1 = nn.NewLinear("fc1", p.NumPixels, p.NumLatent, p.Rand, m.backend)
	m.act = act
	m.dropout = nn.NewDropout[B](p.Dropout(), p.Rand)
	m.dropout.Train(m.training)
	m.fc2 = nn.NewLinear("fc2", p.NumLatent, p.NumClasses, p.Rand, m.backend)
	m.logSoftmax = nn.NewLogSoftmax[B](1)
	m.loss = nn.NewNLLLoss(m.backend)
	return nil
}

// Params returns the parameter set the model was built from.
func (m *MLP[B]) Params() params.MLP {
	return m.params
}

// Forward maps x to per-class log-probabilities of shape [batch, num_classes].
// Any input whose trailing dimensions multiply to num_pixels is accepted.
func (m *MLP[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	m.mustBeSetUp()

	x = nn.Flatten(x, m.params.NumPixels)
	x = m.fc1.Forward(x)
	x = m.act(x)
	x = m.dropout.Forward(x)
	x = m.fc2.Forward(x)
	return m.logSoftmax.Forward(x)
}

// Loss returns the mean negative log-likelihood as a scalar tensor.
func (m *MLP[B]) Loss(in LossInput[B]) *tensor.Tensor[float32, B] {
	m.mustBeSetUp()
	return m.loss.Forward(in.Prediction, in.Target)
}

// Train switches dropout between training and evaluation behavior.
func (m *MLP[B]) Train(training bool) {
	m.training = training
	if m.dropout != nil {
		m.dropout.Train(training)
	}
}

// Training reports whether the model is in training mode.
func (m *MLP[B]) Training() bool {
	return m.training
}

// Parameters returns the trainable parameters of both linear layers.
func (m *MLP[B]) Parameters() []*nn.Parameter[B] {
	if m.fc1 == nil {
		return nil
	}
	ps := make([]*nn.Parameter[B], 0, 4)
	ps = append(ps, m.fc1.Parameters()...)
	ps = append(ps, m.fc2.Parameters()...)
	return ps
}

func (m *MLP[B]) mustBeSetUp() {
	if m.fc1 == nil {
		panic("mlp: SetupModel must be called before use")
	}
}
