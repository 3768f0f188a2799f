package params

import (
	"github.com/born-ml/sparsecode/internal/activation"
)

// LCA configures a sparse-coding Locally Competitive Algorithm model.
type LCA struct {
	Base   `yaml:",inline"`
	Shared `yaml:",inline"`

	WeightLR           float64               `yaml:"weight_lr"`
	WeightDecay        float64               `yaml:"weight_decay"`
	Optimizer          Optimizer             `yaml:"optimizer"`
	RenormalizeWeights bool                  `yaml:"renormalize_weights"`
	DT                 float64               `yaml:"dt"`
	Tau                float64               `yaml:"tau"`
	NumSteps           int                   `yaml:"num_steps"`
	RectifyA           bool                  `yaml:"rectify_a"`
	ThreshType         activation.ThreshType `yaml:"thresh_type"`
	SparseMult         float64               `yaml:"sparse_mult"`
	LatentMult         int                   `yaml:"latent_mult"`
	AllowParentGrads   bool                  `yaml:"allow_parent_grads"`

	// Derived by Finalize. NumLatent is kept as set when LatentMult is zero
	// and must agree with num_pixels*latent_mult otherwise.
	NumLatent int     `yaml:"num_latent"`
	StepSize  float64 `yaml:"step_size"`
}

// Kind implements Set.
func (LCA) Kind() ModelType {
	return ModelLCA
}

// Threshold returns the lca_threshold binding described by p.
func (p LCA) Threshold() activation.ThresholdConfig {
	return activation.ThresholdConfig{
		Type:            p.ThreshType,
		Rectify:         p.RectifyA,
		SparseThreshold: float32(p.SparseMult),
	}
}

// LCADefaults are the standalone defaults of an LCA model.
func LCADefaults(p *LCA) error {
	p.ModelType = ModelLCA
	p.Shared = Shared{
		ModelName:         "lca_mnist",
		Version:           "0.0",
		Dataset:           "mnist",
		StandardizeData:   true,
		NumPixels:         28 * 28 * 1,
		BatchSize:         100,
		NumEpochs:         100,
		TrainLogsPerEpoch: 6,
	}
	p.WeightLR = 0.1
	p.WeightDecay = 0
	p.Optimizer = Optimizer{
		Name:                     OptimizerSGD,
		LRAnnealingMilestoneFrac: []float64{0.5, 0.8},
		LRDecayRate:              0.5,
	}
	p.RenormalizeWeights = true
	p.DT = 0.001
	p.Tau = 0.03
	p.NumSteps = 50
	p.RectifyA = true
	p.ThreshType = activation.Soft
	p.SparseMult = 0.25
	p.LatentMult = 2
	p.AllowParentGrads = false
	return nil
}

// NewLCABuilder returns a builder that applies the base and LCA defaults
// followed by layers.
func NewLCABuilder(env Env, layers ...Layer[LCA]) *Builder[LCA, *LCA] {
	return NewBuilder[LCA](BaseLayer[LCA](env), LCADefaults).With(layers...)
}

func (p *LCA) deriveHelpers() error {
	if p.LatentMult > 0 {
		derived := p.NumPixels * p.LatentMult
		if p.NumLatent != 0 && p.NumLatent != derived {
			return invalid("num_latent", "%d conflicts with num_pixels*latent_mult = %d", p.NumLatent, derived)
		}
		p.NumLatent = derived
	}
	if p.Tau > 0 {
		p.StepSize = p.DT / p.Tau
	}
	p.Optimizer.LRAnnealingMilestoneFrac = append([]float64(nil), p.Optimizer.LRAnnealingMilestoneFrac...)
	p.Optimizer.deriveMilestones(p.NumEpochs)
	return nil
}

func (p *LCA) validate() error {
	if err := p.Base.check(ModelLCA); err != nil {
		return err
	}
	if err := p.Shared.check(); err != nil {
		return err
	}
	if err := checkRates(p.WeightLR, p.WeightDecay); err != nil {
		return err
	}
	if err := p.Optimizer.check(); err != nil {
		return err
	}

	switch {
	case p.DT <= 0:
		return invalid("dt", "must be positive, got %v", p.DT)
	case p.Tau <= 0:
		return invalid("tau", "must be positive, got %v", p.Tau)
	case p.NumSteps <= 0:
		return invalid("num_steps", "must be positive, got %d", p.NumSteps)
	case p.SparseMult < 0:
		return invalid("sparse_mult", "must be non-negative, got %v", p.SparseMult)
	case p.LatentMult < 0:
		return invalid("latent_mult", "must be non-negative, got %d", p.LatentMult)
	case p.NumLatent <= 0:
		return missing("num_latent")
	}

	if p.ThreshType == "" {
		return missing("thresh_type")
	}
	if _, err := activation.ParseThreshType(string(p.ThreshType)); err != nil {
		return invalid("thresh_type", "%v", err)
	}
	return nil
}
