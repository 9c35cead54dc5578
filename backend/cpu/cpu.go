// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// The singular value decomposition is delegated to gonum; the low-rank
// reconstruction and the gather kernels are implemented in Go and split
// output rows across goroutines.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its
// own result and does not share mutable state.
package cpu

import (
	internalcpu "github.com/born-ml/svdcomm/internal/backend/cpu"
	"github.com/born-ml/svdcomm/internal/parallel"
	"github.com/born-ml/svdcomm/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// ParallelConfig controls how kernels split work across goroutines.
type ParallelConfig = parallel.Config

// New creates a new CPU backend.
//
// Example:
//
//	backend := cpu.New()
//	payload, err := svdcomm.Encode(grad, backend, svdcomm.DefaultConfig())
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with explicit parallelism.
func NewWithConfig(cfg ParallelConfig) *Backend {
	return internalcpu.NewWithConfig(cfg)
}
