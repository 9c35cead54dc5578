package cpu

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/svdcomm/internal/tensor"
)

// SVD computes the thin singular value decomposition of a 2D tensor.
//
// The factorization runs in float64 through gonum; the factors are returned in
// the dtype of m. For m of shape (rows, cols) and k = min(rows, cols):
//
//	U: (rows, k), S: (k) descending, V: (cols, k)
//
// Returns tensor.ErrNonFinite if m holds NaN or ±Inf and
// tensor.ErrNoConvergence if gonum reports a failed factorization.
func (cpu *CPUBackend) SVD(m *tensor.RawTensor) (u, s, v *tensor.RawTensor, err error) {
	shape := m.Shape()
	if len(shape) != 2 {
		return nil, nil, nil, fmt.Errorf("svd: %w: expected 2D tensor, got %dD", tensor.ErrShapeMismatch, len(shape))
	}
	if !m.DType().IsFloat() {
		return nil, nil, nil, fmt.Errorf("svd: %w: %s", tensor.ErrUnsupportedDType, m.DType())
	}
	if m.Device() != cpu.device {
		return nil, nil, nil, fmt.Errorf("svd: %w: tensor on %s, backend on %s",
			tensor.ErrDeviceMismatch, m.Device(), cpu.device)
	}

	rows, cols := shape[0], shape[1]
	data := m.Float64s()
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, nil, nil, fmt.Errorf("svd: %w at element %d", tensor.ErrNonFinite, i)
		}
	}

	var fact mat.SVD
	if ok := fact.Factorize(mat.NewDense(rows, cols, data), mat.SVDThin); !ok {
		return nil, nil, nil, fmt.Errorf("svd: %w for %dx%d matrix", tensor.ErrNoConvergence, rows, cols)
	}

	var uDense, vDense mat.Dense
	fact.UTo(&uDense)
	fact.VTo(&vDense)
	values := fact.Values(nil)

	dtype := m.DType()
	if u, err = denseToRaw(&uDense, dtype, cpu.device); err != nil {
		return nil, nil, nil, fmt.Errorf("svd: %w", err)
	}
	if v, err = denseToRaw(&vDense, dtype, cpu.device); err != nil {
		return nil, nil, nil, fmt.Errorf("svd: %w", err)
	}
	if s, err = float64sToRaw(values, tensor.Shape{len(values)}, dtype, cpu.device); err != nil {
		return nil, nil, nil, fmt.Errorf("svd: %w", err)
	}
	return u, s, v, nil
}

// denseToRaw copies a gonum matrix into a row-major tensor of dtype.
func denseToRaw(d *mat.Dense, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	r, c := d.Dims()
	data := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		data = append(data, d.RawRowView(i)...)
	}
	return float64sToRaw(data, tensor.Shape{r, c}, dtype, device)
}

func float64sToRaw(data []float64, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) (*tensor.RawTensor, error) {
	switch dtype {
	case tensor.Float64:
		return tensor.FromFloat64(data, shape, device)
	case tensor.Float32:
		f32 := make([]float32, len(data))
		for i, x := range data {
			f32[i] = float32(x)
		}
		return tensor.FromFloat32(f32, shape, device)
	default:
		return nil, fmt.Errorf("%w: %s", tensor.ErrUnsupportedDType, dtype)
	}
}
