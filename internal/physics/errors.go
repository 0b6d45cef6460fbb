package physics

import "errors"

// Domain errors for body store and parameter operations.
var (
	// ErrStoreFull indicates the store reached its configured capacity.
	ErrStoreFull = errors.New("physics: body store is full")

	// ErrBodyIndex indicates an index outside the live body range.
	ErrBodyIndex = errors.New("physics: body index out of range")

	// ErrUnknownParameter indicates SetParam was called with an unknown name.
	ErrUnknownParameter = errors.New("physics: unknown parameter")

	// ErrParameterBounds indicates a parameter value that cannot be clamped (NaN or Inf).
	ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

	// ErrInvalidState indicates a body position or velocity diverged to NaN or Inf.
	ErrInvalidState = errors.New("physics: invalid state (NaN or Inf detected)")
)
