package cpu

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/tensor"
)

// Div performs element-wise division of equally shaped float tensors.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("div: shape mismatch %v / %v", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("div: dtype mismatch %s / %s", a.DType(), b.DType()))
	}
	checkFloat("div", a)
	cpu.checkDevice("div", a, b)

	result, err := tensor.NewRaw(a.Shape(), a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("div: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		divInto(result.AsFloat32(), a.AsFloat32(), b.AsFloat32())
	case tensor.Float64:
		divInto(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
	}
	return result
}

func divInto[T float32 | float64](dst, a, b []T) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}
