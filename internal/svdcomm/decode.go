package svdcomm

import (
	"fmt"

	"github.com/born-ml/svdcomm/internal/tensor"
)

// Decode reconstructs a tensor from a payload.
//
// *Uncompressed payloads return the carried tensor unchanged. *Compressed
// payloads return U·diag(S)·Vᵗ, reshaped to OrigShape when the tensor was
// normalized during encoding.
func Decode(p Payload, backend tensor.Backend) (*tensor.RawTensor, error) {
	switch p := p.(type) {
	case *Uncompressed:
		return p.Tensor, nil
	case *Compressed:
		for _, f := range []*tensor.RawTensor{p.U, p.S, p.V} {
			if f.Device() != backend.Device() {
				return nil, fmt.Errorf("decode: %w: factor on %s, backend %s on %s",
					tensor.ErrDeviceMismatch, f.Device(), backend.Name(), backend.Device())
			}
		}
		approx := backend.LowRank(p.U, p.S, p.V)
		if p.Reshaped {
			approx = backend.Reshape(approx, p.OrigShape)
		}
		return approx, nil
	default:
		return nil, fmt.Errorf("decode: %w: %T", ErrUnknownPayload, p)
	}
}
