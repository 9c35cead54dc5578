package cpu

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/parallel"
	"github.com/born-ml/svdcomm/internal/tensor"
)

// LowRank reconstructs U·diag(S)·Vᵗ as MatMul(U·diag(S), Transpose(V)).
// diag(S) is never materialized; S scales the columns of a copy of U.
//
//	U: (rows, k), S: (k), V: (cols, k) -> (rows, cols)
func (cpu *CPUBackend) LowRank(u, s, v *tensor.RawTensor) *tensor.RawTensor {
	uShape, sShape, vShape := u.Shape(), s.Shape(), v.Shape()
	if len(uShape) != 2 || len(sShape) != 1 || len(vShape) != 2 {
		panic(fmt.Sprintf("lowrank: expected U 2D, S 1D, V 2D, got %v, %v, %v", uShape, sShape, vShape))
	}
	k := uShape[1]
	if sShape[0] != k || vShape[1] != k {
		panic(fmt.Sprintf("lowrank: rank mismatch U %v, S %v, V %v", uShape, sShape, vShape))
	}
	if u.DType() != s.DType() || u.DType() != v.DType() {
		panic(fmt.Sprintf("lowrank: dtype mismatch %s, %s, %s", u.DType(), s.DType(), v.DType()))
	}
	checkFloat("lowrank", u)
	cpu.checkDevice("lowrank", u, s, v)

	return cpu.MatMul(cpu.scaleColumns(u, s), cpu.Transpose(v))
}

// scaleColumns returns a copy of x (rows, k) with column r multiplied by s[r].
func (cpu *CPUBackend) scaleColumns(x, s *tensor.RawTensor) *tensor.RawTensor {
	rows, k := x.Shape()[0], x.Shape()[1]
	result := x.Clone()

	switch x.DType() {
	case tensor.Float32:
		scaleRows(result.AsFloat32(), s.AsFloat32(), rows, k, cpu.par)
	case tensor.Float64:
		scaleRows(result.AsFloat64(), s.AsFloat64(), rows, k, cpu.par)
	}
	return result
}

func scaleRows[T float32 | float64](dst, s []T, rows, k int, cfg parallel.Config) {
	parallel.For(rows, func(i int) {
		row := dst[i*k : i*k+k]
		for r := range row {
			row[r] *= s[r]
		}
	}, cfg)
}
