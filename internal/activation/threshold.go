package activation

import (
	"fmt"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// ThreshType selects the shrinkage operator of LCAThreshold.
type ThreshType string

// Supported threshold types.
const (
	Soft ThreshType = "soft"
	Hard ThreshType = "hard"
)

// ParseThreshType validates a threshold type name.
func ParseThreshType(name string) (ThreshType, error) {
	switch t := ThreshType(name); t {
	case Soft, Hard:
		return t, nil
	default:
		return "", fmt.Errorf("%w: must be %q or %q, not %q", ErrUnknownThreshType, Soft, Hard, name)
	}
}

// ThresholdConfig binds the parameters of the lca_threshold activation.
type ThresholdConfig struct {
	Type            ThreshType
	Rectify         bool
	SparseThreshold float32
}

// Threshold binds cfg into a nullary Func. The threshold type is validated
// here so the returned function cannot fail.
func Threshold[B tensor.Backend](cfg ThresholdConfig) (Func[B], error) {
	if _, err := ParseThreshType(string(cfg.Type)); err != nil {
		return nil, err
	}
	return func(u *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
		a, err := LCAThreshold(u, cfg.Type, cfg.Rectify, cfg.SparseThreshold)
		if err != nil {
			panic(err) // unreachable: type validated above
		}
		return a
	}, nil
}

// LCAThreshold applies the soft or hard shrinkage operator element-wise.
//
// soft, rectified:     u - λ  where u > λ,  else 0
// soft, two-sided:     u - λ  where u ≥ λ;  u + λ where u ≤ -λ; else 0
// hard, rectified:     u      where u > λ,  else 0
// hard, two-sided:     u      where u ≥ λ or u ≤ -λ, else 0
//
// The output has the shape of u.
func LCAThreshold[B tensor.Backend](u *tensor.Tensor[float32, B], threshType ThreshType, rectify bool, sparseThreshold float32) (*tensor.Tensor[float32, B], error) {
	backend := u.Backend()
	raw := u.Raw()
	lambda := tensor.Scalar(sparseThreshold, backend).Raw()
	negLambda := tensor.Scalar(-sparseThreshold, backend).Raw()
	zeros := tensor.ZerosLike(u).Raw()

	var out *tensor.RawTensor
	switch threshType {
	case Soft:
		shrunk := backend.AddScalar(raw, -sparseThreshold)
		if rectify {
			out = backend.Where(backend.Greater(raw, lambda), shrunk, zeros)
		} else {
			grown := backend.AddScalar(raw, sparseThreshold)
			out = backend.Where(backend.GreaterEqual(raw, lambda), shrunk,
				backend.Where(backend.LowerEqual(raw, negLambda), grown, zeros))
		}
	case Hard:
		if rectify {
			out = backend.Where(backend.Greater(raw, lambda), raw, zeros)
		} else {
			out = backend.Where(backend.GreaterEqual(raw, lambda), raw,
				backend.Where(backend.LowerEqual(raw, negLambda), raw, zeros))
		}
	default:
		return nil, fmt.Errorf("%w: must be %q or %q, not %q", ErrUnknownThreshType, Soft, Hard, threshType)
	}

	return tensor.New[float32, B](out, backend), nil
}
