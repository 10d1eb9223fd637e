package rq

import "errors"

var (
	// ErrInvalidContext is returned by the chain-navigation methods when the
	// target context is not reachable from the receiver.
	ErrInvalidContext = errors.New("rq: invalid context")

	// ErrRepresentationMismatch is returned when decoding a serialized
	// polynomial whose representation differs from the one asserted by the
	// caller.
	ErrRepresentationMismatch = errors.New("rq: representation mismatch")
)
