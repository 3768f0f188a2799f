package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/sparsecode/internal/tensor"
)

func TestSelect(t *testing.T) {
	assert.Equal(t, tensor.WebGPU, Select(func() bool { return true }))
	assert.Equal(t, tensor.CPU, Select(func() bool { return false }))
	assert.Equal(t, tensor.CPU, Select(nil))
}

func TestProbe_NeverPanics(t *testing.T) {
	// Result depends on the host; the probe must settle on a known device either way.
	assert.NotPanics(t, func() {
		d := Probe()
		assert.Contains(t, []tensor.Device{tensor.CPU, tensor.WebGPU}, d)
	})
}
