package svdcomm

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/svdcomm/internal/tensor"
)

// Encoder compresses tensors with a fixed Config and backend.
//
// An Encoder owns its random source and is not safe for concurrent use;
// create one per goroutine.
type Encoder struct {
	config  Config
	backend tensor.Backend
	src     rand.Source
}

// NewEncoder creates an encoder. The backend must live on the same device as
// the tensors passed to Encode.
func NewEncoder(config Config, backend tensor.Backend) *Encoder {
	var src rand.Source
	if config.Seed >= 0 {
		src = rand.NewPCG(uint64(config.Seed), uint64(config.Seed)>>1)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Encoder{
		config:  config,
		backend: backend,
		src:     src,
	}
}

// Encode compresses t.
//
// Errors wrapping ErrSVDFailed mean the factorization failed; the gradient
// must not be used.
func (e *Encoder) Encode(t *tensor.RawTensor) (Payload, error) {
	if t == nil {
		return nil, ErrNilTensor
	}
	cfg := e.config
	if !cfg.Compress {
		return &Uncompressed{Tensor: t}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if t.Device() != e.backend.Device() {
		return nil, fmt.Errorf("encode: %w: tensor on %s, backend %s on %s",
			tensor.ErrDeviceMismatch, t.Device(), e.backend.Name(), e.backend.Device())
	}
	if !t.DType().IsFloat() {
		return nil, fmt.Errorf("encode: %w: %s", tensor.ErrUnsupportedDType, t.DType())
	}

	origShape := t.Shape().Clone()
	matrix := t
	shape2D, reshaped := Normalize(origShape)
	if reshaped {
		matrix = e.backend.Reshape(t, shape2D)
	}
	if len(matrix.Shape()) != 2 {
		return &Uncompressed{Tensor: t}, nil
	}

	u, s, v, err := e.backend.SVD(matrix)
	if err != nil {
		return nil, fmt.Errorf("encode %v: %w: %w", origShape, ErrSVDFailed, err)
	}

	switch {
	case cfg.RandomSample:
		u, s, v, err = e.sample(u, s, v)
		if err != nil {
			return nil, fmt.Errorf("encode %v: %w", origShape, err)
		}
	case cfg.Rank > 0:
		u = e.backend.Narrow(u, cfg.Rank)
		s = e.backend.Narrow(s, cfg.Rank)
		v = e.backend.Narrow(v, cfg.Rank)
	}

	return &Compressed{
		U:         u,
		S:         s,
		V:         v,
		OrigShape: origShape,
		Reshaped:  reshaped,
		Rank:      cfg.Rank,
	}, nil
}

// sample keeps the components chosen by SampleRank and debiases their
// singular values. Index and probability tensors are allocated on the device
// of s.
func (e *Encoder) sample(u, s, v *tensor.RawTensor) (*tensor.RawTensor, *tensor.RawTensor, *tensor.RawTensor, error) {
	sel := SampleRank(s.Float64s(), e.config.Rank, e.src, e.config.MaxRetries)

	index := make([]int64, len(sel.Indices))
	for i, idx := range sel.Indices {
		index[i] = int64(idx)
	}
	k := tensor.Shape{len(index)}
	idx, err := tensor.FromInt64(index, k, s.Device())
	if err != nil {
		return nil, nil, nil, err
	}
	probs, err := probsTensor(sel.Probs, k, s.DType(), s.Device())
	if err != nil {
		return nil, nil, nil, err
	}

	u = e.backend.SelectColumns(u, idx)
	s = e.backend.Div(e.backend.Select(s, idx), probs)
	v = e.backend.SelectColumns(v, idx)
	return u, s, v, nil
}

func probsTensor(p []float64, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	if dtype == tensor.Float64 {
		return tensor.FromFloat64(p, shape, device)
	}
	f32 := make([]float32, len(p))
	for i, x := range p {
		f32[i] = float32(x)
	}
	return tensor.FromFloat32(f32, shape, device)
}

// Encode compresses t with a fresh Encoder.
func Encode(t *tensor.RawTensor, backend tensor.Backend, config Config) (Payload, error) {
	return NewEncoder(config, backend).Encode(t)
}
