package models

import (
	"github.com/born-ml/sparsecode/internal/nn"
	"github.com/born-ml/sparsecode/internal/params"
	"github.com/born-ml/sparsecode/internal/tensor"
)

type stubModel struct {
	set      params.Set
	training bool
}

func (s *stubModel) SetupModel(set params.Set) error {
	s.set = set
	return nil
}

func (s *stubModel) Forward(x *tensor.Tensor[float32, backendT]) *tensor.Tensor[float32, backendT] {
	return x
}

func (s *stubModel) Loss(in LossInput[backendT]) *tensor.Tensor[float32, backendT] {
	return in.Prediction
}

func (s *stubModel) Train(training bool) { s.training = training }

func (s *stubModel) Training() bool { return s.training }

func (s *stubModel) Parameters() []*nn.Parameter[backendT] { return nil }
