package ptn

import "errors"

var (
	// ErrDuplicateID is returned when a place or transition identifier
	// already exists in the target net.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrUnknownPlace is returned when a sketch edge names a place the
	// net does not contain.
	ErrUnknownPlace = errors.New("unknown place")

	// ErrCycleDetected is returned when a cascading tick revisits a place
	// already on the current propagation path.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrNotFound is returned when the start place of a cascade does not
	// exist.
	ErrNotFound = errors.New("not found")
)
