package core

import "errors"

// Error categories shared by the simulation packages. Operations wrap one of
// these with context; callers test with errors.Is.
var (
	// ErrInvalidArgument reports a value outside its permitted range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState reports an operation not permitted in the current phase.
	ErrInvalidState = errors.New("invalid state")
	// ErrOutOfBounds reports a request beyond fixed board capacity.
	ErrOutOfBounds = errors.New("out of bounds")
)
