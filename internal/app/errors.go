package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called before SetBackend.
	ErrNoBackend = errors.New("no backend set")

	// ErrUnsavedChanges indicates a quit with unsaved changes.
	ErrUnsavedChanges = errors.New("unsaved changes")

	// ErrInvalidPosition indicates a malformed batch position.
	ErrInvalidPosition = errors.New("invalid position")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

// Error implements error.
func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
