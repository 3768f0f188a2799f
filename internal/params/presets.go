package params

import (
	"fmt"
	"sort"

	"github.com/born-ml/sparsecode/internal/activation"
)

// LCAMNIST is the LCA member of the lca_mlp_mnist ensemble.
func LCAMNIST(p *LCA) error {
	p.ModelType = ModelLCA
	p.WeightLR = 0.1
	p.WeightDecay = 0
	p.Optimizer = Optimizer{
		Name:                     OptimizerSGD,
		LRAnnealingMilestoneFrac: []float64{0.8},
		LRDecayRate:              0.1,
	}
	p.RenormalizeWeights = true
	p.DT = 0.001
	p.Tau = 0.03
	p.NumSteps = 75
	p.RectifyA = true
	p.ThreshType = activation.Soft
	p.SparseMult = 0.3
	p.LatentMult = 4
	p.AllowParentGrads = false
	return nil
}

// MLPMNIST is the MLP member of the lca_mlp_mnist ensemble. It classifies
// raw pixels through a hidden layer as wide as the LCA latent code.
func MLPMNIST(p *MLP) error {
	p.ModelType = ModelMLP
	p.WeightLR = 5e-4
	p.WeightDecay = 2e-6
	p.Optimizer = Optimizer{
		Name:                     OptimizerAdam,
		LRAnnealingMilestoneFrac: []float64{0.8},
		LRDecayRate:              0.1,
	}
	p.LayerTypes = []string{LayerFC}
	p.LayerChannels = nil
	p.LatentMult = 4
	p.ActivationFunctions = []string{string(activation.Identity)}
	p.DropoutRate = []float64{0.0}
	return nil
}

// LCAMLPMNIST assembles the lca + mlp MNIST ensemble. Overrides may be nil.
func LCAMLPMNIST(env Env, overrides *Overrides) (Ensemble, error) {
	return LCAMLPMNISTBuilder(env, overrides).Finalize()
}

// LCAMLPMNISTBuilder returns the unfinalized lca_mlp_mnist ensemble builder.
func LCAMLPMNISTBuilder(env Env, overrides *Overrides) *Builder[Ensemble, *Ensemble] {
	shared := overrides.apply(MNISTShared())
	lca := NewLCABuilder(env, LCAMNIST, overrides.LCALayer(), SharedLayer[LCA](shared))
	mlp := NewMLPBuilder(env, MLPMNIST, overrides.MLPLayer(), SharedLayer[MLP](shared))
	return NewEnsembleBuilder(env, shared, lca, mlp)
}

// Preset builds a named configuration.
type Preset func(env Env, overrides *Overrides) (Set, error)

var presets = map[string]Preset{
	"lca_mlp_mnist": func(env Env, o *Overrides) (Set, error) {
		return LCAMLPMNISTBuilder(env, o).Build()
	},
	"lca_mnist": func(env Env, o *Overrides) (Set, error) {
		return NewLCABuilder(env, o.LCALayer(), SharedLayer[LCA](o.apply(lcaShared()))).Build()
	},
	"mlp_mnist": func(env Env, o *Overrides) (Set, error) {
		return NewMLPBuilder(env, o.MLPLayer(), SharedLayer[MLP](o.apply(mlpShared()))).Build()
	},
}

func lcaShared() Shared {
	var p LCA
	_ = LCADefaults(&p)
	return p.Shared
}

func mlpShared() Shared {
	var p MLP
	_ = MLPDefaults(&p)
	return p.Shared
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q (have %v)", ErrInvalidField, name, PresetNames())
	}
	return p, nil
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
