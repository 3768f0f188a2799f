package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsembleSharedOverlay(t *testing.T) {
	e, err := LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)

	assert.Equal(t, ModelEnsemble, e.ModelType)
	assert.Equal(t, 50, e.BatchSize)
	require.Len(t, e.Members, 2)
	assert.Equal(t, ModelLCA, e.Members[0].Kind())
	assert.Equal(t, ModelMLP, e.Members[1].Kind())

	// Standalone defaults use other batch sizes; the shared block wins.
	for _, m := range e.Members {
		assert.Equal(t, 50, m.SharedParams().BatchSize)
		assert.Equal(t, 150, m.SharedParams().NumEpochs)
		assert.Equal(t, 784, m.SharedParams().NumPixels)
		assert.Equal(t, MNISTShared(), m.SharedParams())
	}
}

func TestEnsembleMemberFields(t *testing.T) {
	e, err := LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)

	set, ok := e.Member(ModelLCA)
	require.True(t, ok)
	lca := set.(LCA)
	assert.Equal(t, ModelLCA, lca.ModelType)
	assert.Equal(t, 3136, lca.NumLatent)
	assert.Equal(t, 75, lca.NumSteps)
	assert.InDelta(t, 0.1, lca.WeightLR, 1e-12)
	assert.Equal(t, []int{120}, lca.Optimizer.MilestoneEpochs)

	set, ok = e.Member(ModelMLP)
	require.True(t, ok)
	mlp := set.(MLP)
	assert.Equal(t, []int{3136, 10}, mlp.LayerChannels)
	assert.Equal(t, OptimizerAdam, mlp.Optimizer.Name)
	assert.InDelta(t, 5e-4, mlp.WeightLR, 1e-12)

	_, ok = e.Member(ModelEnsemble)
	assert.False(t, ok)
}

func TestEnsembleGeneratorsNotShared(t *testing.T) {
	e, err := LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)

	lca := e.Members[0].BaseParams().Rand
	mlp := e.Members[1].BaseParams().Rand
	require.NotNil(t, lca)
	require.NotNil(t, mlp)
	assert.NotSame(t, lca, mlp)
	assert.NotSame(t, e.Rand, lca)
	assert.NotSame(t, e.Rand, mlp)
	assert.NotEqual(t, lca.Uint64(), mlp.Uint64())
}

func TestEnsembleDeterministic(t *testing.T) {
	a, err := LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)
	b, err := LCAMLPMNIST(testEnv(), nil)
	require.NoError(t, err)

	for i := range a.Members {
		assert.Equal(t, a.Members[i].BaseParams().Rand.Uint64(), b.Members[i].BaseParams().Rand.Uint64())
	}
}

func TestEnsembleRequiresMembers(t *testing.T) {
	_, err := NewEnsembleBuilder(testEnv(), MNISTShared()).Finalize()
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestEnsembleRejectsDisagreeingMember(t *testing.T) {
	// The member never imports the shared block, so it keeps batch_size 100.
	_, err := NewEnsembleBuilder(testEnv(), MNISTShared(), NewLCABuilder(testEnv())).Finalize()
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestEnsembleRejectsNested(t *testing.T) {
	shared := MNISTShared()
	inner := NewEnsembleBuilder(testEnv(), shared,
		NewLCABuilder(testEnv(), SharedLayer[LCA](shared)))
	_, err := NewEnsembleBuilder(testEnv(), shared, inner).Finalize()
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestEnsembleMemberErrorPropagates(t *testing.T) {
	shared := MNISTShared()
	bad := NewMLPBuilder(testEnv(), SharedLayer[MLP](shared), func(p *MLP) error {
		p.ActivationFunctions = []string{"swish"}
		return nil
	})
	_, err := NewEnsembleBuilder(testEnv(), shared, bad).Finalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.Contains(t, err.Error(), "member 0")
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"lca_mlp_mnist", "lca_mnist", "mlp_mnist"}, PresetNames())

	for _, name := range PresetNames() {
		preset, err := LookupPreset(name)
		require.NoError(t, err)
		set, err := preset(testEnv(), nil)
		require.NoError(t, err, name)
		assert.NotEmpty(t, set.SharedParams().ModelName)
	}

	_, err := LookupPreset("gan_mnist")
	assert.ErrorIs(t, err, ErrInvalidField)
}
