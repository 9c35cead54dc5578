package svdcomm

import "github.com/born-ml/svdcomm/internal/tensor"

// Normalize maps a tensor shape to the 2D shape that is factorized.
//
// Shapes of rank two or less are returned unchanged with reshaped=false.
// For (d0, d1, rest...):
//   - if every trailing dimension is 1 the result is (d0, d1);
//   - otherwise each (d0, d1) pair keeps its trailing values as one row,
//     giving (d0·d1, prod(rest)).
//
// Convolution kernels [out, in, kh, kw] become (out·in, kh·kw). The mapping
// preserves element order, so reshaping back to the original shape is exact.
func Normalize(shape tensor.Shape) (normalized tensor.Shape, reshaped bool) {
	if len(shape) <= 2 {
		return shape.Clone(), false
	}

	features := 1
	for _, d := range shape[2:] {
		features *= d
	}
	if features == 1 {
		return tensor.Shape{shape[0], shape[1]}, true
	}
	return tensor.Shape{shape[0] * shape[1], features}, true
}
