package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/orgmode/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrNoPath indicates a file operation on an engine with no backing file.
	ErrNoPath = errors.New("document has no file path")

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)

// FileError wraps a file system failure with the operation and path.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
