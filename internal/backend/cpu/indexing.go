package cpu

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/tensor"
)

// SelectColumns gathers columns of a 2D tensor.
// Similar to x[:, index] in NumPy.
//
// The index tensor must be 1D with dtype int64 and live on the backend's
// device.
//
// Example:
//
//	x: [4, 5], index: [0, 3] -> output: [4, 2]
func (cpu *CPUBackend) SelectColumns(x, index *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("select_columns: expected 2D tensor, got %dD", len(shape)))
	}
	idx := checkIndex("select_columns", index, shape[1])
	cpu.checkDevice("select_columns", x, index)

	rows, cols, k := shape[0], shape[1], len(idx)
	result, err := tensor.NewRaw(tensor.Shape{rows, k}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("select_columns: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		selectColumns(result.AsFloat32(), x.AsFloat32(), idx, rows, cols)
	case tensor.Float64:
		selectColumns(result.AsFloat64(), x.AsFloat64(), idx, rows, cols)
	case tensor.Int64:
		selectColumns(result.AsInt64(), x.AsInt64(), idx, rows, cols)
	default:
		panic(fmt.Sprintf("select_columns: unsupported dtype %s", x.DType()))
	}
	return result
}

func selectColumns[T tensor.DType](dst, src []T, idx []int64, rows, cols int) {
	k := len(idx)
	for i := 0; i < rows; i++ {
		for j, c := range idx {
			dst[i*k+j] = src[i*cols+int(c)]
		}
	}
}

// Select gathers entries of a 1D tensor: output[j] = x[index[j]].
func (cpu *CPUBackend) Select(x, index *tensor.RawTensor) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 1 {
		panic(fmt.Sprintf("select: expected 1D tensor, got %dD", len(shape)))
	}
	idx := checkIndex("select", index, shape[0])
	cpu.checkDevice("select", x, index)

	result, err := tensor.NewRaw(tensor.Shape{len(idx)}, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("select: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		selectColumns(result.AsFloat32(), x.AsFloat32(), idx, 1, shape[0])
	case tensor.Float64:
		selectColumns(result.AsFloat64(), x.AsFloat64(), idx, 1, shape[0])
	case tensor.Int64:
		selectColumns(result.AsInt64(), x.AsInt64(), idx, 1, shape[0])
	default:
		panic(fmt.Sprintf("select: unsupported dtype %s", x.DType()))
	}
	return result
}

// Narrow keeps the first n columns of a 2D tensor or the first n entries of a
// 1D tensor. n is clamped to the available size.
func (cpu *CPUBackend) Narrow(x *tensor.RawTensor, n int) *tensor.RawTensor {
	shape := x.Shape()
	if n <= 0 {
		panic(fmt.Sprintf("narrow: length must be > 0, got %d", n))
	}
	var size int
	switch len(shape) {
	case 1:
		size = shape[0]
	case 2:
		size = shape[1]
	default:
		panic(fmt.Sprintf("narrow: expected 1D or 2D tensor, got %dD", len(shape)))
	}
	n = min(n, size)

	index := make([]int64, n)
	for i := range index {
		index[i] = int64(i)
	}
	idx, err := tensor.FromInt64(index, tensor.Shape{n}, x.Device())
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}
	if len(shape) == 1 {
		return cpu.Select(x, idx)
	}
	return cpu.SelectColumns(x, idx)
}

func checkIndex(op string, index *tensor.RawTensor, size int) []int64 {
	if index.DType() != tensor.Int64 {
		panic(fmt.Sprintf("%s: index tensor must have dtype int64, got %s", op, index.DType()))
	}
	if len(index.Shape()) != 1 {
		panic(fmt.Sprintf("%s: index tensor must be 1D, got %v", op, index.Shape()))
	}
	idx := index.AsInt64()
	for _, i := range idx {
		if i < 0 || int(i) >= size {
			panic(fmt.Sprintf("%s: index %d out of range [0, %d)", op, i, size))
		}
	}
	return idx
}
