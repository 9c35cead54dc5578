package svdcomm

import "github.com/born-ml/svdcomm/internal/tensor"

// Payload is the result of Encode. It is either *Uncompressed or *Compressed.
type Payload interface {
	// Encoded reports whether the payload carries SVD factors.
	Encoded() bool

	// NumValues returns the number of scalar values the payload carries.
	NumValues() int

	sealed()
}

// Uncompressed wraps a tensor that was passed through without compression.
type Uncompressed struct {
	Tensor *tensor.RawTensor
}

// Encoded returns false.
func (*Uncompressed) Encoded() bool { return false }

// NumValues returns the element count of the wrapped tensor.
func (p *Uncompressed) NumValues() int { return p.Tensor.NumElements() }

func (*Uncompressed) sealed() {}

// Compressed holds the kept factors of a thin SVD of the 2D-normalized
// tensor. With k kept components:
//
//	U: (rows, k), S: (k), V: (cols, k)
//
// and U·diag(S)·Vᵗ has the normalized shape (rows, cols).
type Compressed struct {
	U, S, V *tensor.RawTensor

	// OrigShape is the shape of the tensor passed to Encode.
	OrigShape tensor.Shape

	// Reshaped is true when the tensor had more than two dimensions and was
	// normalized before factorization.
	Reshaped bool

	// Rank is the rank requested in Config.
	Rank int
}

// Encoded returns true.
func (*Compressed) Encoded() bool { return true }

// K returns the number of kept singular components.
func (p *Compressed) K() int { return p.S.NumElements() }

// NumValues returns the total element count of U, S and V.
func (p *Compressed) NumValues() int {
	return p.U.NumElements() + p.S.NumElements() + p.V.NumElements()
}

// Ratio returns the original element count divided by NumValues.
// Values above 1 mean the payload is smaller than the tensor.
func (p *Compressed) Ratio() float64 {
	return float64(p.OrigShape.NumElements()) / float64(p.NumValues())
}

func (*Compressed) sealed() {}
