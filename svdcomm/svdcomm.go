// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package svdcomm compresses gradient tensors with a low-rank SVD before they
// are exchanged between workers, and reconstructs them after.
//
// # Overview
//
// Encode reshapes a tensor of rank > 2 into a matrix, factorizes it and keeps
// a subset of the singular components. With random sampling (the default)
// component i is kept with a probability derived from the spectrum and its
// singular value is divided by that probability, so the decoded gradient is
// an unbiased estimate. Without random sampling the top Rank components are
// kept.
//
// # Basic Usage
//
//	backend := cpu.New()
//	enc := svdcomm.NewEncoder(svdcomm.DefaultConfig(), backend)
//
//	payload, err := enc.Encode(grad)
//	if errors.Is(err, svdcomm.ErrSVDFailed) {
//	    log.Fatalf("gradient unusable: %v", err)
//	}
//	// ... send payload ...
//	approx, err := svdcomm.Decode(payload, backend)
//
// # Shapes
//
// A tensor (d0, d1, rest...) is factorized as (d0, d1) when every trailing
// dimension is 1 and as (d0·d1, prod(rest)) otherwise. Decode restores the
// original shape. Tensors of rank < 2 are passed through uncompressed.
package svdcomm

import (
	"math/rand/v2"

	"github.com/born-ml/svdcomm/internal/svdcomm"
	"github.com/born-ml/svdcomm/tensor"
)

// Config configures Encode.
type Config = svdcomm.Config

// DefaultConfig returns adaptive sampled compression with a random seed.
func DefaultConfig() Config {
	return svdcomm.DefaultConfig()
}

// Payload is the result of Encode: *Uncompressed or *Compressed.
type Payload = svdcomm.Payload

// Uncompressed wraps a tensor passed through without compression.
type Uncompressed = svdcomm.Uncompressed

// Compressed holds kept SVD factors and the metadata to restore the shape.
type Compressed = svdcomm.Compressed

// Selection is the outcome of rank sampling.
type Selection = svdcomm.Selection

// Encoder compresses tensors with a fixed configuration.
// It is not safe for concurrent use.
type Encoder = svdcomm.Encoder

// DegenerateThreshold is the largest singular value below which a spectrum
// is treated as carrying no signal.
const DegenerateThreshold = svdcomm.DegenerateThreshold

// Errors returned by Encode and Decode.
var (
	ErrSVDFailed      = svdcomm.ErrSVDFailed
	ErrInvalidRank    = svdcomm.ErrInvalidRank
	ErrInvalidConfig  = svdcomm.ErrInvalidConfig
	ErrNilTensor      = svdcomm.ErrNilTensor
	ErrUnknownPayload = svdcomm.ErrUnknownPayload
)

// NewEncoder creates an encoder bound to backend.
func NewEncoder(config Config, backend tensor.Backend) *Encoder {
	return svdcomm.NewEncoder(config, backend)
}

// Encode compresses t with a fresh Encoder.
func Encode(t *tensor.RawTensor, backend tensor.Backend, config Config) (Payload, error) {
	return svdcomm.Encode(t, backend, config)
}

// Decode reconstructs a tensor from a payload.
func Decode(p Payload, backend tensor.Backend) (*tensor.RawTensor, error) {
	return svdcomm.Decode(p, backend)
}

// Normalize returns the 2D shape a tensor shape is factorized as, and whether
// it differs from the input rank.
func Normalize(shape tensor.Shape) (tensor.Shape, bool) {
	return svdcomm.Normalize(shape)
}

// SampleRank picks singular components of a descending spectrum.
// See Config.Rank for the meaning of rank.
func SampleRank(s []float64, rank int, src rand.Source, maxRetries int) Selection {
	return svdcomm.SampleRank(s, rank, src, maxRetries)
}
