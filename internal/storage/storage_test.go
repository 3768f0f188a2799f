package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/sparsecode/internal/params"
	"github.com/born-ml/sparsecode/internal/tensor"
)

func testEnv(runID string) params.Env {
	return params.Env{
		Probe:    func() tensor.Device { return tensor.CPU },
		HomeDir:  func() (string, error) { return "/home/test", nil },
		NewRunID: func() string { return runID },
	}
}

func ensembleRecord(t *testing.T, runID string, at time.Time) RunRecord {
	t.Helper()
	e, err := params.LCAMLPMNIST(testEnv(runID), nil)
	require.NoError(t, err)
	run, err := NewRunRecord(e, at)
	require.NoError(t, err)
	return run
}

func TestNewRunRecord(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	run := ensembleRecord(t, "run-a", at)

	assert.Equal(t, CurrentSchemaVersion, run.SchemaVersion)
	assert.Equal(t, "run-a", run.ID)
	assert.Equal(t, "lca_mlp_mnist", run.ModelName)
	assert.Equal(t, "0.0", run.ModelVersion)
	assert.Equal(t, "ensemble", run.ModelType)
	assert.Equal(t, "mnist", run.Dataset)
	assert.Equal(t, time.UTC, run.CreatedAt.Location())
	assert.True(t, run.CreatedAt.Equal(at))
	assert.Contains(t, string(run.Config), "batch_size: 50")
}

func TestNewRunRecordFreshID(t *testing.T) {
	e, err := params.LCAMLPMNIST(testEnv(""), nil)
	require.NoError(t, err)
	run, err := NewRunRecord(e, time.Now())
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	run := ensembleRecord(t, "run-a", time.Unix(100, 0))
	require.NoError(t, store.SaveRun(ctx, run))

	loaded, ok, err := store.GetRun(ctx, "run-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run, loaded)

	_, ok, err = store.GetRun(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCopiesConfig(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	run := ensembleRecord(t, "run-a", time.Unix(100, 0))
	require.NoError(t, store.SaveRun(ctx, run))
	run.Config[0] = '#'

	loaded, _, err := store.GetRun(ctx, "run-a")
	require.NoError(t, err)
	assert.NotEqual(t, byte('#'), loaded.Config[0])

	loaded.Config[0] = '#'
	again, _, err := store.GetRun(ctx, "run-a")
	require.NoError(t, err)
	assert.NotEqual(t, byte('#'), again.Config[0])
}

func TestMemoryStoreListRunsOrdered(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	require.NoError(t, store.SaveRun(ctx, ensembleRecord(t, "run-c", time.Unix(300, 0))))
	require.NoError(t, store.SaveRun(ctx, ensembleRecord(t, "run-b", time.Unix(100, 0))))
	require.NoError(t, store.SaveRun(ctx, ensembleRecord(t, "run-a", time.Unix(100, 0))))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"run-a", "run-b", "run-c"}, ids)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	first := ensembleRecord(t, "run-a", time.Unix(100, 0))
	second := first
	second.ModelName = "renamed"
	require.NoError(t, store.SaveRun(ctx, first))
	require.NoError(t, store.SaveRun(ctx, second))

	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "renamed", runs[0].ModelName)
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.ErrorIs(t, store.SaveRun(ctx, RunRecord{ID: "x", SchemaVersion: CurrentSchemaVersion}), ErrNotInitialized)
	_, _, err := store.GetRun(ctx, "x")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = store.ListRuns(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSaveRunValidates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	assert.Error(t, store.SaveRun(ctx, RunRecord{SchemaVersion: CurrentSchemaVersion}))
	assert.ErrorIs(t, store.SaveRun(ctx, RunRecord{ID: "x", SchemaVersion: 99}), ErrVersionMismatch)
}

func TestCodec(t *testing.T) {
	run := ensembleRecord(t, "run-a", time.Unix(100, 0).UTC())
	data, err := EncodeRun(run)
	require.NoError(t, err)

	decoded, err := DecodeRun(data)
	require.NoError(t, err)
	assert.Equal(t, run.ID, decoded.ID)
	assert.Equal(t, run.Config, decoded.Config)
	assert.True(t, run.CreatedAt.Equal(decoded.CreatedAt))

	_, err = DecodeRun([]byte(`{"schema_version": 2, "id": "x"}`))
	assert.ErrorIs(t, err, ErrVersionMismatch)

	_, err = DecodeRun([]byte(`{`))
	assert.Error(t, err)
}

func TestNewStoreMemory(t *testing.T) {
	for _, kind := range []string{"", "memory"} {
		store, err := NewStore(kind, "")
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.NoError(t, CloseIfSupported(store))
	}
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore("unknown", "")
	assert.Error(t, err)
}

func TestDefaultStoreKind(t *testing.T) {
	store, err := NewStore(DefaultStoreKind(), filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	require.NoError(t, store.Init(context.Background()))
	assert.NoError(t, CloseIfSupported(store))
}
