package cpu

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/parallel"
	"github.com/born-ml/svdcomm/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N).
// Output rows are computed in parallel chunks.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("matmul: dtype mismatch %s @ %s", a.DType(), b.DType()))
	}
	cpu.checkDevice("matmul", a, b)

	result, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n, cpu.par)
	case tensor.Float64:
		matmulFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n, cpu.par)
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}

	return result
}

// matmulFloat32 computes C[i,j] = sum_k A[i,k] * B[k,j] with i-k-j loop order,
// accumulating in float64.
func matmulFloat32(c, a, b []float32, m, k, n int, cfg parallel.Config) {
	parallel.ForChunks(m, func(start, end int) {
		acc := make([]float64, n)
		for i := start; i < end; i++ {
			clear(acc)
			for kIdx := 0; kIdx < k; kIdx++ {
				aik := float64(a[i*k+kIdx])
				if aik == 0 {
					continue
				}
				row := b[kIdx*n : kIdx*n+n]
				for j, bkj := range row {
					acc[j] += aik * float64(bkj)
				}
			}
			for j, v := range acc {
				c[i*n+j] = float32(v)
			}
		}
	}, cfg)
}

func matmulFloat64(c, a, b []float64, m, k, n int, cfg parallel.Config) {
	parallel.ForChunks(m, func(start, end int) {
		for i := start; i < end; i++ {
			out := c[i*n : i*n+n]
			clear(out)
			for kIdx := 0; kIdx < k; kIdx++ {
				aik := a[i*k+kIdx]
				if aik == 0 {
					continue
				}
				row := b[kIdx*n : kIdx*n+n]
				for j, bkj := range row {
					out[j] += aik * bkj
				}
			}
		}
	}, cfg)
}

// Transpose swaps the two axes of a 2D tensor.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor) *tensor.RawTensor {
	shape := t.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(shape)))
	}
	cpu.checkDevice("transpose", t)

	rows, cols := shape[0], shape[1]
	result, err := tensor.NewRaw(tensor.Shape{cols, rows}, t.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		transpose2D(result.AsFloat32(), t.AsFloat32(), rows, cols)
	case tensor.Float64:
		transpose2D(result.AsFloat64(), t.AsFloat64(), rows, cols)
	case tensor.Int64:
		transpose2D(result.AsInt64(), t.AsInt64(), rows, cols)
	default:
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	return result
}

func transpose2D[T tensor.DType](dst, src []T, rows, cols int) {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
}
