package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sparsecode/internal/activation"
	"github.com/born-ml/sparsecode/internal/tensor"
)

func testEnv() Env {
	return Env{
		Probe:    func() tensor.Device { return tensor.CPU },
		HomeDir:  func() (string, error) { return "/home/test", nil },
		NewRunID: func() string { return "run-1" },
	}
}

func TestBaseLayerDefaults(t *testing.T) {
	p, err := NewMLPBuilder(testEnv()).Finalize()
	require.NoError(t, err)

	assert.Equal(t, DefaultRandSeed, p.RandSeed)
	assert.Equal(t, tensor.Float32, p.DType)
	assert.Equal(t, tensor.CPU, p.Device)
	assert.Equal(t, "/home/test/Work/Projects/", p.OutDir)
	assert.Equal(t, "/home/test/Work/Datasets/", p.DataDir)
	assert.True(t, p.LogToFile)
	assert.Equal(t, "run-1", p.RunID)
	require.NotNil(t, p.Rand)
}

func TestBaseLayerUsesProbedDevice(t *testing.T) {
	env := testEnv()
	env.Probe = func() tensor.Device { return tensor.WebGPU }

	p, err := NewLCABuilder(env).Finalize()
	require.NoError(t, err)
	assert.Equal(t, tensor.WebGPU, p.Device)
}

func TestBaseLayerHomeDirError(t *testing.T) {
	env := testEnv()
	env.HomeDir = func() (string, error) { return "", errors.New("no home") }

	_, err := NewLCABuilder(env).Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no home")
}

func TestDerivedModelTypeWinsOverBase(t *testing.T) {
	lca, err := NewLCABuilder(testEnv()).Finalize()
	require.NoError(t, err)
	assert.Equal(t, ModelLCA, lca.ModelType)
	assert.Equal(t, ModelLCA, lca.Kind())

	mlp, err := NewMLPBuilder(testEnv()).Finalize()
	require.NoError(t, err)
	assert.Equal(t, ModelMLP, mlp.ModelType)
}

func TestModelTypeMismatchRejected(t *testing.T) {
	_, err := NewMLPBuilder(testEnv(), func(p *MLP) error {
		p.ModelType = ModelLCA
		return nil
	}).Finalize()
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestLayerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewLCABuilder(testEnv(), func(*LCA) error { return boom }).Finalize()
	assert.ErrorIs(t, err, boom)
}

func TestLaterLayersWin(t *testing.T) {
	p, err := NewLCABuilder(testEnv(),
		func(p *LCA) error { p.NumSteps = 10; return nil },
		func(p *LCA) error { p.NumSteps = 20; return nil },
	).Finalize()
	require.NoError(t, err)
	assert.Equal(t, 20, p.NumSteps)
}

func TestLCAHelpers(t *testing.T) {
	p, err := NewLCABuilder(testEnv(), LCAMNIST, SharedLayer[LCA](MNISTShared())).Finalize()
	require.NoError(t, err)

	assert.Equal(t, 784*4, p.NumLatent)
	assert.InDelta(t, 0.001/0.03, p.StepSize, 1e-12)
	assert.Equal(t, []int{120}, p.Optimizer.MilestoneEpochs)

	cfg := p.Threshold()
	assert.Equal(t, activation.Soft, cfg.Type)
	assert.True(t, cfg.Rectify)
	assert.InDelta(t, 0.3, cfg.SparseThreshold, 1e-6)
}

func TestLCANumLatentFollowsMultiplier(t *testing.T) {
	for _, mult := range []int{1, 2, 4, 8} {
		p, err := NewLCABuilder(testEnv(), func(p *LCA) error {
			p.NumPixels = 100
			p.LatentMult = mult
			return nil
		}).Finalize()
		require.NoError(t, err)
		assert.Equal(t, 100*mult, p.NumLatent)
	}
}

func TestLCAExplicitNumLatent(t *testing.T) {
	p, err := NewLCABuilder(testEnv(), func(p *LCA) error {
		p.LatentMult = 0
		p.NumLatent = 512
		return nil
	}).Finalize()
	require.NoError(t, err)
	assert.Equal(t, 512, p.NumLatent)

	_, err = NewLCABuilder(testEnv(), func(p *LCA) error {
		p.LatentMult = 0
		return nil
	}).Finalize()
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestMLPDerivesLayerChannels(t *testing.T) {
	p, err := NewMLPBuilder(testEnv(), MLPMNIST, SharedLayer[MLP](MNISTShared())).Finalize()
	require.NoError(t, err)

	assert.Equal(t, []int{784 * 4, 10}, p.LayerChannels)
	assert.Equal(t, 784*4, p.NumLatent)
	assert.Equal(t, 10, p.NumClasses)
	assert.Equal(t, 0.0, p.Dropout())
}

func TestMLPExplicitLayerChannels(t *testing.T) {
	p, err := NewMLPBuilder(testEnv(), func(p *MLP) error {
		p.LayerChannels = []int{128, 10}
		return nil
	}).Finalize()
	require.NoError(t, err)
	assert.Equal(t, 128, p.NumLatent)
	assert.Equal(t, 10, p.NumClasses)
}

func TestMLPExplicitNumLatent(t *testing.T) {
	p, err := NewMLPBuilder(testEnv(), func(p *MLP) error {
		p.LatentMult = 0
		p.NumLatent = 200
		return nil
	}).Finalize()
	require.NoError(t, err)
	assert.Equal(t, []int{200, 10}, p.LayerChannels)
	assert.Equal(t, 200, p.NumLatent)
}

func TestMLPDropoutAbsent(t *testing.T) {
	p, err := NewMLPBuilder(testEnv(), func(p *MLP) error {
		p.DropoutRate = nil
		return nil
	}).Finalize()
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Dropout())
}

func TestValidationErrors(t *testing.T) {
	mlpCases := []struct {
		name  string
		layer Layer[MLP]
		want  error
	}{
		{"dropout above one", func(p *MLP) error { p.DropoutRate = []float64{1.5}; return nil }, ErrInvalidField},
		{"unknown activation", func(p *MLP) error { p.ActivationFunctions = []string{"swish"}; return nil }, ErrInvalidField},
		{"threshold activation", func(p *MLP) error { p.ActivationFunctions = []string{"lca_threshold"}; return nil }, ErrInvalidField},
		{"unknown layer type", func(p *MLP) error { p.LayerTypes = []string{"conv"}; return nil }, ErrInvalidField},
		{"no layer types", func(p *MLP) error { p.LayerTypes = nil; return nil }, ErrMissingField},
		{"two hidden layers", func(p *MLP) error {
			p.LayerTypes = []string{"fc", "fc"}
			p.LayerChannels = []int{64, 32, 10}
			p.ActivationFunctions = []string{"relu", "relu"}
			return nil
		}, ErrInvalidField},
		{"zero channel", func(p *MLP) error { p.LayerChannels = []int{0, 10}; return nil }, ErrInvalidField},
		{"channel count", func(p *MLP) error { p.LayerChannels = []int{64}; return nil }, ErrInvalidField},
		{"output width", func(p *MLP) error { p.LayerChannels = []int{100, 3}; return nil }, ErrInvalidField},
		{"num_latent against channels", func(p *MLP) error {
			p.LayerChannels = []int{100, 10}
			p.NumLatent = 64
			return nil
		}, ErrInvalidField},
		{"num_latent against multiplier", func(p *MLP) error { p.NumLatent = 64; return nil }, ErrInvalidField},
		{"num_classes against channels", func(p *MLP) error { p.NumClasses = 3; return nil }, ErrInvalidField},
		{"no channels", func(p *MLP) error { p.LatentMult = 0; return nil }, ErrMissingField},
		{"no optimizer", func(p *MLP) error { p.Optimizer.Name = ""; return nil }, ErrMissingField},
		{"unknown optimizer", func(p *MLP) error { p.Optimizer.Name = "rmsprop"; return nil }, ErrInvalidField},
		{"descending milestones", func(p *MLP) error {
			p.Optimizer.LRAnnealingMilestoneFrac = []float64{0.8, 0.5}
			return nil
		}, ErrInvalidField},
		{"zero decay rate", func(p *MLP) error { p.Optimizer.LRDecayRate = 0; return nil }, ErrInvalidField},
		{"negative lr", func(p *MLP) error { p.WeightLR = -1; return nil }, ErrInvalidField},
		{"zero batch", func(p *MLP) error { p.BatchSize = 0; return nil }, ErrInvalidField},
		{"no dataset", func(p *MLP) error { p.Dataset = ""; return nil }, ErrMissingField},
		{"float64 dtype", func(p *MLP) error { p.DType = tensor.Float64; return nil }, ErrInvalidField},
	}
	for _, tc := range mlpCases {
		t.Run("mlp/"+tc.name, func(t *testing.T) {
			_, err := NewMLPBuilder(testEnv(), tc.layer).Finalize()
			assert.ErrorIs(t, err, tc.want)
		})
	}

	lcaCases := []struct {
		name  string
		layer Layer[LCA]
		want  error
	}{
		{"unknown thresh type", func(p *LCA) error { p.ThreshType = "medium"; return nil }, ErrInvalidField},
		{"no thresh type", func(p *LCA) error { p.ThreshType = ""; return nil }, ErrMissingField},
		{"zero tau", func(p *LCA) error { p.Tau = 0; return nil }, ErrInvalidField},
		{"zero dt", func(p *LCA) error { p.DT = 0; return nil }, ErrInvalidField},
		{"zero steps", func(p *LCA) error { p.NumSteps = 0; return nil }, ErrInvalidField},
		{"negative sparse mult", func(p *LCA) error { p.SparseMult = -0.1; return nil }, ErrInvalidField},
		{"no out dir", func(p *LCA) error { p.OutDir = ""; return nil }, ErrMissingField},
		{"num_latent against multiplier", func(p *LCA) error { p.NumLatent = 500; return nil }, ErrInvalidField},
	}
	for _, tc := range lcaCases {
		t.Run("lca/"+tc.name, func(t *testing.T) {
			_, err := NewLCABuilder(testEnv(), tc.layer).Finalize()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOptimizerSchedule(t *testing.T) {
	o := Optimizer{
		Name:                     OptimizerSGD,
		LRAnnealingMilestoneFrac: []float64{0.5, 0.8},
		LRDecayRate:              0.1,
	}
	o.deriveMilestones(100)
	assert.Equal(t, []int{50, 80}, o.MilestoneEpochs)

	assert.InDelta(t, 1.0, o.LearningRate(1, 0), 1e-12)
	assert.InDelta(t, 1.0, o.LearningRate(1, 49), 1e-12)
	assert.InDelta(t, 0.1, o.LearningRate(1, 50), 1e-12)
	assert.InDelta(t, 0.01, o.LearningRate(1, 80), 1e-12)
	assert.InDelta(t, 0.01, o.LearningRate(1, 99), 1e-12)
}

func TestOptimizerMilestoneRounding(t *testing.T) {
	o := Optimizer{LRAnnealingMilestoneFrac: []float64{0.29, 0.8}}
	o.deriveMilestones(100)
	assert.Equal(t, []int{29, 80}, o.MilestoneEpochs)
}

func TestNoMilestones(t *testing.T) {
	p, err := NewLCABuilder(testEnv(), func(p *LCA) error {
		p.Optimizer.LRAnnealingMilestoneFrac = nil
		return nil
	}).Finalize()
	require.NoError(t, err)
	assert.Empty(t, p.Optimizer.MilestoneEpochs)
	assert.InDelta(t, 0.1, p.Optimizer.LearningRate(p.WeightLR, 1000), 1e-12)
}

func TestFinalizeCopiesSlices(t *testing.T) {
	fracs := []float64{0.5}
	dropout := []float64{0.25}
	p, err := NewMLPBuilder(testEnv(), func(p *MLP) error {
		p.Optimizer.LRAnnealingMilestoneFrac = fracs
		p.DropoutRate = dropout
		return nil
	}).Finalize()
	require.NoError(t, err)

	fracs[0] = 0.9
	dropout[0] = 0.75
	assert.Equal(t, []float64{0.5}, p.Optimizer.LRAnnealingMilestoneFrac)
	assert.Equal(t, 0.25, p.Dropout())
}

func TestFinalizeSeedsGenerator(t *testing.T) {
	b := NewLCABuilder(testEnv())
	first, err := b.Finalize()
	require.NoError(t, err)
	second, err := b.Finalize()
	require.NoError(t, err)

	assert.NotSame(t, first.Rand, second.Rand)
	assert.Equal(t, first.Rand.Uint64(), second.Rand.Uint64())
	assert.Equal(t, NewRand(DefaultRandSeed).Uint64(), NewRand(DefaultRandSeed).Uint64())
}

func TestFinalizeSeedFromLayer(t *testing.T) {
	a, err := NewLCABuilder(testEnv(), func(p *LCA) error { p.RandSeed = 1; return nil }).Finalize()
	require.NoError(t, err)
	b, err := NewLCABuilder(testEnv(), func(p *LCA) error { p.RandSeed = 2; return nil }).Finalize()
	require.NoError(t, err)
	assert.NotEqual(t, a.Rand.Uint64(), b.Rand.Uint64())
}

func TestWithRandMovesOwnership(t *testing.T) {
	rng := NewRand(7)
	b := NewMLPBuilder(testEnv()).WithRand(rng)

	first, err := b.Finalize()
	require.NoError(t, err)
	assert.Same(t, rng, first.Rand)

	second, err := b.Finalize()
	require.NoError(t, err)
	assert.NotSame(t, rng, second.Rand)
}

func TestParseModelType(t *testing.T) {
	for _, name := range []string{"mlp", "lca", "ensemble"} {
		got, err := ParseModelType(name)
		require.NoError(t, err)
		assert.Equal(t, ModelType(name), got)
	}
	_, err := ParseModelType("gan")
	assert.ErrorIs(t, err, ErrModelType)
}
