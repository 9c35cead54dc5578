package tensor

// Backend defines the interface that compute backends must implement for the
// compression core. Backends handle the numeric work; the core only decides
// which components to keep.
//
// Kernels panic on programmer errors (rank or dtype mismatches). SVD returns
// an error because convergence depends on the data.
//
// Implementations:
//   - CPU: Pure Go kernels with gonum for the factorization
type Backend interface {
	// SVD computes the thin singular value decomposition of a 2D tensor m of
	// shape (rows, cols): m = U·diag(S)·Vᵗ with U (rows, k), S (k), V (cols, k)
	// and k = min(rows, cols). S is sorted in descending order.
	SVD(m *RawTensor) (u, s, v *RawTensor, err error)

	// Matrix operations
	MatMul(a, b *RawTensor) *RawTensor
	Transpose(t *RawTensor) *RawTensor

	// LowRank computes U·diag(S)·Vᵗ.
	LowRank(u, s, v *RawTensor) *RawTensor

	// Indexing operations (index tensors have dtype int64)
	SelectColumns(x, index *RawTensor) *RawTensor // columns of a 2D tensor
	Select(x, index *RawTensor) *RawTensor        // entries of a 1D tensor
	Narrow(x *RawTensor, n int) *RawTensor        // first n columns (2D) or entries (1D)

	// Element-wise division, equal shapes
	Div(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
