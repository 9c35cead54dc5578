package svdcomm

import "errors"

var (
	// ErrSVDFailed marks a factorization failure (non-convergence or
	// non-finite input). It is unrecoverable for the gradient at hand: callers
	// running a training job should stop rather than apply a corrupted update.
	ErrSVDFailed = errors.New("svdcomm: svd failed")

	// ErrInvalidRank is returned for a rank the chosen selection mode cannot
	// honor: negative with random sampling, zero with top-k truncation.
	ErrInvalidRank = errors.New("svdcomm: invalid rank")

	// ErrInvalidConfig is returned for a Config field outside its valid range.
	ErrInvalidConfig = errors.New("svdcomm: invalid config")

	// ErrNilTensor is returned when Encode receives a nil tensor.
	ErrNilTensor = errors.New("svdcomm: nil tensor")

	// ErrUnknownPayload is returned when Decode receives a nil payload or a
	// payload type it does not know.
	ErrUnknownPayload = errors.New("svdcomm: unknown payload")
)
