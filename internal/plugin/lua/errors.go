package lua

import "errors"

// Lua runtime errors.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a script exceeds its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotFunction is returned when calling a value that is not a function.
	ErrNotFunction = errors.New("value is not a function")
)
