package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/orgmode/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []Operation
	redoStack []Operation

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Push adds an operation to the undo stack and clears the redo stack.
func (h *History) Push(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, op)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverses the most recent operation on buf and returns it.
// On failure the operation stays on the undo stack.
func (h *History) Undo(buf *buffer.Buffer) (Operation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Operation{}, ErrNothingToUndo
	}

	op := h.undoStack[len(h.undoStack)-1]
	if err := op.undo(buf); err != nil {
		return Operation{}, fmt.Errorf("undo %s: %w", op.Description(), err)
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, op)
	return op, nil
}

// Redo re-applies the most recently undone operation on buf and returns it.
func (h *History) Redo(buf *buffer.Buffer) (Operation, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Operation{}, ErrNothingToRedo
	}

	op := h.redoStack[len(h.redoStack)-1]
	if err := op.redo(buf); err != nil {
		return Operation{}, fmt.Errorf("redo %s: %w", op.Description(), err)
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, op)
	return op, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
