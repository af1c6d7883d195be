package plugin

import (
	"errors"
	"fmt"
)

// Plugin system errors.
var (
	// ErrClosed is returned when loading into a closed manager.
	ErrClosed = errors.New("plugin manager is closed")

	// ErrNilHost is returned when a manager is created without a document.
	ErrNilHost = errors.New("plugin host document is nil")
)

// ScriptError reports a script that failed to load or run.
type ScriptError struct {
	Script string
	Err    error
}

// Error implements error.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
