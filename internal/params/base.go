package params

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/born-ml/sparsecode/internal/device"
	"github.com/born-ml/sparsecode/internal/tensor"
)

// ModelType tags which model a parameter set configures.
type ModelType string

// Known model types.
const (
	ModelMLP      ModelType = "mlp"
	ModelLCA      ModelType = "lca"
	ModelEnsemble ModelType = "ensemble"
)

// ParseModelType validates a model type name.
func ParseModelType(name string) (ModelType, error) {
	switch t := ModelType(name); t {
	case ModelMLP, ModelLCA, ModelEnsemble:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrModelType, name)
	}
}

// DefaultRandSeed seeds every parameter set unless a layer overrides it.
const DefaultRandSeed int64 = 123456789

// Set is a resolved parameter set.
type Set interface {
	// Kind returns the model type the set configures.
	Kind() ModelType
	// BaseParams returns the universal fields.
	BaseParams() Base
	// SharedParams returns the fields shared across an ensemble.
	SharedParams() Shared
}

// Base holds the fields every parameter set carries.
type Base struct {
	ModelType ModelType       `yaml:"model_type"`
	LogToFile bool            `yaml:"log_to_file"`
	DType     tensor.DataType `yaml:"dtype"`
	Device    tensor.Device   `yaml:"device"`
	RandSeed  int64           `yaml:"rand_seed"`
	OutDir    string          `yaml:"out_dir"`
	DataDir   string          `yaml:"data_dir"`
	RunID     string          `yaml:"run_id"`

	// Rand is owned by this parameter set and must not be shared.
	Rand *rand.Rand `yaml:"-"`
}

// BaseParams implements Set.
func (b Base) BaseParams() Base {
	return b
}

func (b *Base) base() *Base {
	return b
}

// BaseHolder is implemented by pointers to every parameter set type.
type BaseHolder interface {
	base() *Base
}

// NewRand returns a generator seeded deterministically from seed. It matches
// the generator Finalize creates for a standalone set.
func NewRand(seed int64) *rand.Rand {
	return newRand(seed, 0)
}

// Env supplies the host facts the base layer depends on.
// Zero fields fall back to CPU, os.UserHomeDir and uuid.NewString.
type Env struct {
	Probe    func() tensor.Device
	HomeDir  func() (string, error)
	NewRunID func() string
}

// DefaultEnv probes for an accelerator and reads the real home directory.
func DefaultEnv() Env {
	return Env{
		Probe:    device.Probe,
		HomeDir:  os.UserHomeDir,
		NewRunID: uuid.NewString,
	}
}

func (e Env) withDefaults() Env {
	if e.Probe == nil {
		e.Probe = func() tensor.Device { return tensor.CPU }
	}
	if e.HomeDir == nil {
		e.HomeDir = os.UserHomeDir
	}
	if e.NewRunID == nil {
		e.NewRunID = uuid.NewString
	}
	return e
}

// BaseLayer writes the universal defaults. It resets ModelType, so model
// layers must follow it.
func BaseLayer[T any, P interface {
	*T
	BaseHolder
}](env Env) Layer[T] {
	env = env.withDefaults()
	return func(t *T) error {
		home, err := env.HomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}

		*P(t).base() = Base{
			LogToFile: true,
			DType:     tensor.Float32,
			Device:    env.Probe(),
			RandSeed:  DefaultRandSeed,
			OutDir:    filepath.Join(home, "Work", "Projects") + string(filepath.Separator),
			DataDir:   filepath.Join(home, "Work", "Datasets") + string(filepath.Separator),
			RunID:     env.NewRunID(),
		}
		return nil
	}
}

func (b Base) check(want ModelType) error {
	if b.ModelType != want {
		return invalid("model_type", "want %q, got %q", want, b.ModelType)
	}
	if b.DType != tensor.Float32 {
		return invalid("dtype", "only float32 is supported, got %s", b.DType)
	}
	if b.OutDir == "" {
		return missing("out_dir")
	}
	if b.DataDir == "" {
		return missing("data_dir")
	}
	if b.Rand == nil {
		return missing("rand")
	}
	return nil
}
