package params

import (
	"slices"

	"github.com/born-ml/sparsecode/internal/activation"
)

// DefaultNumClasses is the fixed output width of the classifier.
const DefaultNumClasses = 10

// LayerFC is the only supported MLP layer type.
const LayerFC = "fc"

// MLP configures a multilayer perceptron classifier with a single hidden layer.
type MLP struct {
	Base   `yaml:",inline"`
	Shared `yaml:",inline"`

	WeightLR            float64   `yaml:"weight_lr"`
	WeightDecay         float64   `yaml:"weight_decay"`
	Optimizer           Optimizer `yaml:"optimizer"`
	LayerTypes          []string  `yaml:"layer_types"`
	LayerChannels       []int     `yaml:"layer_channels"`
	ActivationFunctions []string  `yaml:"activation_functions"`
	DropoutRate         []float64 `yaml:"dropout_rate"`
	LatentMult          int       `yaml:"latent_mult"`

	// Derived by Finalize. An explicit NumLatent sizes the hidden layer when
	// neither LayerChannels nor LatentMult is set; otherwise both must agree.
	NumLatent  int `yaml:"num_latent"`
	NumClasses int `yaml:"num_classes"`
}

// Kind implements Set.
func (MLP) Kind() ModelType {
	return ModelMLP
}

// Dropout returns the dropout probability of the hidden layer.
func (p MLP) Dropout() float64 {
	if len(p.DropoutRate) == 0 {
		return 0
	}
	return p.DropoutRate[0]
}

// MLPDefaults are the standalone defaults of an MLP model.
// LayerChannels is left unset so Finalize derives it from num_pixels.
func MLPDefaults(p *MLP) error {
	p.ModelType = ModelMLP
	p.Shared = Shared{
		ModelName:         "mlp_mnist",
		Version:           "0.0",
		Dataset:           "mnist",
		StandardizeData:   false,
		NumPixels:         28 * 28 * 1,
		BatchSize:         64,
		NumEpochs:         20,
		TrainLogsPerEpoch: 2,
	}
	p.WeightLR = 1e-3
	p.WeightDecay = 0
	p.Optimizer = Optimizer{
		Name:                     OptimizerAdam,
		LRAnnealingMilestoneFrac: []float64{0.5},
		LRDecayRate:              0.5,
	}
	p.LayerTypes = []string{LayerFC}
	p.LayerChannels = nil
	p.ActivationFunctions = []string{string(activation.LReLU)}
	p.DropoutRate = []float64{0.5}
	p.LatentMult = 1
	return nil
}

// NewMLPBuilder returns a builder that applies the base and MLP defaults
// followed by layers.
func NewMLPBuilder(env Env, layers ...Layer[MLP]) *Builder[MLP, *MLP] {
	return NewBuilder[MLP](BaseLayer[MLP](env), MLPDefaults).With(layers...)
}

func (p *MLP) deriveHelpers() error {
	p.LayerTypes = slices.Clone(p.LayerTypes)
	p.ActivationFunctions = slices.Clone(p.ActivationFunctions)
	p.DropoutRate = slices.Clone(p.DropoutRate)
	p.Optimizer.LRAnnealingMilestoneFrac = slices.Clone(p.Optimizer.LRAnnealingMilestoneFrac)

	switch {
	case len(p.LayerChannels) > 0:
		p.LayerChannels = slices.Clone(p.LayerChannels)
	case p.LatentMult > 0:
		p.LayerChannels = []int{p.NumPixels * p.LatentMult, DefaultNumClasses}
	case p.NumLatent > 0:
		p.LayerChannels = []int{p.NumLatent, DefaultNumClasses}
	}
	if n := len(p.LayerChannels); n > 0 {
		if p.NumLatent != 0 && p.NumLatent != p.LayerChannels[0] {
			return invalid("num_latent", "%d conflicts with hidden width %d", p.NumLatent, p.LayerChannels[0])
		}
		if p.NumClasses != 0 && p.NumClasses != p.LayerChannels[n-1] {
			return invalid("num_classes", "%d conflicts with output width %d", p.NumClasses, p.LayerChannels[n-1])
		}
		p.NumLatent = p.LayerChannels[0]
		p.NumClasses = p.LayerChannels[n-1]
	}

	p.Optimizer.deriveMilestones(p.NumEpochs)
	return nil
}

func (p *MLP) validate() error {
	if err := p.Base.check(ModelMLP); err != nil {
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

	if len(p.LayerTypes) == 0 {
		return missing("layer_types")
	}
	if len(p.LayerTypes) != 1 {
		return invalid("layer_types", "exactly one hidden layer is supported, got %d", len(p.LayerTypes))
	}
	for i, lt := range p.LayerTypes {
		if lt != LayerFC {
			return invalid("layer_types", "entry %d: unsupported layer type %q", i, lt)
		}
	}

	if len(p.LayerChannels) == 0 {
		return missing("layer_channels")
	}
	if len(p.LayerChannels) != len(p.LayerTypes)+1 {
		return invalid("layer_channels", "want %d entries for %d layers, got %d",
			len(p.LayerTypes)+1, len(p.LayerTypes), len(p.LayerChannels))
	}
	for i, c := range p.LayerChannels {
		if c <= 0 {
			return invalid("layer_channels", "entry %d must be positive, got %d", i, c)
		}
	}
	if out := p.LayerChannels[len(p.LayerChannels)-1]; out != DefaultNumClasses {
		return invalid("layer_channels", "output width must be %d, got %d", DefaultNumClasses, out)
	}

	if len(p.ActivationFunctions) != len(p.LayerTypes) {
		return invalid("activation_functions", "want %d entries, got %d", len(p.LayerTypes), len(p.ActivationFunctions))
	}
	for i, name := range p.ActivationFunctions {
		if err := activation.Validate(name); err != nil {
			return invalid("activation_functions", "entry %d: %v", i, err)
		}
		if activation.Name(name) == activation.LCAThresholdName {
			return invalid("activation_functions", "entry %d: %q needs threshold parameters", i, name)
		}
	}

	if len(p.DropoutRate) > len(p.LayerTypes) {
		return invalid("dropout_rate", "want at most %d entries, got %d", len(p.LayerTypes), len(p.DropoutRate))
	}
	for i, r := range p.DropoutRate {
		if r < 0 || r > 1 {
			return invalid("dropout_rate", "entry %d must be in [0, 1], got %v", i, r)
		}
	}
	return nil
}
