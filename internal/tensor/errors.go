package tensor

import "errors"

// Sentinel errors returned by tensor construction and shape operations.
// Match them with errors.Is; they may be wrapped with context.
var (
	// ErrBadShape is returned when a shape has a non-positive dimension.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch is returned when data length or a target shape does not
	// agree with the element count of a tensor.
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrDeviceMismatch is returned when a tensor and a backend live on
	// different compute devices.
	ErrDeviceMismatch = errors.New("tensor: device mismatch")

	// ErrUnsupportedDType is returned when an operation receives a data type
	// it cannot process.
	ErrUnsupportedDType = errors.New("tensor: unsupported dtype")

	// ErrNonFinite is returned when a numeric routine meets NaN or ±Inf input.
	ErrNonFinite = errors.New("tensor: NaN or Inf encountered")

	// ErrNoConvergence is returned when an iterative factorization fails to
	// converge.
	ErrNoConvergence = errors.New("tensor: factorization did not converge")
)
