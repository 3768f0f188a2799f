// Package activation maps symbolic activation names to tensor transformations.
//
// The set of names is closed: Resolve looks the name up in a table built at
// package initialization and fails for anything it does not know rather than
// falling back to a default, since a wrong activation silently changes model
// semantics.
package activation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Configuration errors returned by the registry.
var (
	ErrUnknownActivation = errors.New("activation: unsupported activation function")
	ErrNotNullary        = errors.New("activation: function requires threshold parameters")
	ErrUnknownThreshType = errors.New("activation: unsupported threshold type")
)

// Name is a symbolic activation function name as it appears in configuration.
type Name string

// Supported activation names.
const (
	Identity         Name = "identity"
	ReLU             Name = "relu"
	LReLU            Name = "lrelu"
	LeakyReLU        Name = "leaky_relu"
	LCAThresholdName Name = "lca_threshold"
)

// LeakySlope is the negative-side slope used by lrelu and leaky_relu.
const LeakySlope float32 = 0.01

// Func is an element-wise tensor transformation. Output shape equals input shape.
type Func[B tensor.Backend] func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

type kind int

const (
	kindIdentity kind = iota
	kindReLU
	kindLeakyReLU
	kindThreshold
)

var registry = map[Name]kind{
	Identity:         kindIdentity,
	ReLU:             kindReLU,
	LReLU:            kindLeakyReLU,
	LeakyReLU:        kindLeakyReLU,
	LCAThresholdName: kindThreshold,
}

// Resolve returns the activation registered under name.
//
// lca_threshold is registered but not nullary; resolving it returns
// ErrNotNullary. Use Threshold to bind its parameters.
func Resolve[B tensor.Backend](name string) (Func[B], error) {
	k, ok := registry[Name(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}

	switch k {
	case kindIdentity:
		return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] { return x }, nil
	case kindReLU:
		return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
			return tensor.New[float32, B](x.Backend().ReLU(x.Raw()), x.Backend())
		}, nil
	case kindLeakyReLU:
		return func(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
			return tensor.New[float32, B](x.Backend().LeakyReLU(x.Raw(), LeakySlope), x.Backend())
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use Threshold)", ErrNotNullary, name)
	}
}

// MustResolve is like Resolve but panics on error.
// Intended for configuration-time wiring where an unknown name is fatal.
func MustResolve[B tensor.Backend](name string) Func[B] {
	fn, err := Resolve[B](name)
	if err != nil {
		panic(err)
	}
	return fn
}

// Validate reports whether name is a registered activation, nullary or not.
func Validate(name string) error {
	if _, ok := registry[Name(name)]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
	return nil
}

// Names returns the sorted list of activation names Resolve accepts.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name, k := range registry {
		if k != kindThreshold {
			names = append(names, string(name))
		}
	}
	sort.Strings(names)
	return names
}
