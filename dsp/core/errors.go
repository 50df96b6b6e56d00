package core

import "errors"

// Validation errors returned by effect and filter constructors and setters.
// Process methods never fail: every parameter problem is caught at
// construction or setter time. Callers match these with errors.Is.
var (
	// ErrOutOfRange reports a scalar parameter outside its documented interval.
	ErrOutOfRange = errors.New("parameter out of range")

	// ErrMismatchedLengths reports parallel slice parameters of unequal length.
	ErrMismatchedLengths = errors.New("mismatched parameter lengths")

	// ErrMissingRequiredField reports a constructor finalized without a value
	// for a parameter that has no default.
	ErrMissingRequiredField = errors.New("missing required parameter")

	// ErrInsufficientCapacity reports a delay or read offset that exceeds the
	// buffer capacity derived at construction time. Reaching it indicates an
	// internal sizing bug, not a caller error.
	ErrInsufficientCapacity = errors.New("insufficient buffer capacity")
)
