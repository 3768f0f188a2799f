// Package device selects the execution device for parameter sets by probing
// for a WebGPU-capable accelerator.
//
// Uses go-webgpu (github.com/go-webgpu/webgpu) which loads wgpu-native at
// runtime; a missing native library is treated as "no accelerator".
package device

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/sparsecode/internal/tensor"
)

// Prober reports whether an accelerator can be used.
type Prober func() bool

// Select returns WebGPU when probe reports an available adapter and CPU otherwise.
// A nil probe selects CPU.
func Select(probe Prober) tensor.Device {
	if probe != nil && probe() {
		return tensor.WebGPU
	}
	return tensor.CPU
}

// Probe selects the execution device using AcceleratorAvailable.
func Probe() tensor.Device {
	return Select(AcceleratorAvailable)
}

// AcceleratorAvailable checks if a WebGPU adapter can be acquired on this system.
func AcceleratorAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	if err := wgpu.Init(); err != nil {
		return false
	}

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}
