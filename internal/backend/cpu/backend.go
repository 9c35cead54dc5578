// Package cpu implements the CPU backend: pure Go kernels for the low-rank
// reconstruction and gonum for the singular value decomposition.
package cpu

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/parallel"
	"github.com/born-ml/svdcomm/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend whose row-parallel kernels follow cfg.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Reshape returns a view of t with newShape.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result, err := t.Reshape(newShape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return result
}

func (cpu *CPUBackend) checkDevice(op string, ts ...*tensor.RawTensor) {
	for _, t := range ts {
		if t.Device() != cpu.device {
			panic(fmt.Sprintf("%s: tensor on %s, backend on %s", op, t.Device(), cpu.device))
		}
	}
}

func checkFloat(op string, t *tensor.RawTensor) {
	if !t.DType().IsFloat() {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, t.DType()))
	}
}
