package script

import "errors"

// Errors for script execution.
var (
	// ErrClosed is returned when using a closed state.
	ErrClosed = errors.New("script state is closed")

	// ErrReentered is returned when Go code reached from a running script
	// uses the same state again.
	ErrReentered = errors.New("script state re-entered from a callback")

	// ErrTimeout is returned when a call exceeds the state's timeout.
	ErrTimeout = errors.New("script timed out")

	// ErrNotFunction is returned when a compiled chunk does not return a
	// function.
	ErrNotFunction = errors.New("script did not return a function")

	// ErrResult is returned when a script returns a value of the wrong type.
	ErrResult = errors.New("unexpected script result")
)
