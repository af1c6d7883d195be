package history

import (
	"fmt"
	"time"

	"github.com/dshills/orgmode/internal/engine/buffer"
)

// Operation is a single applied edit with enough state to reverse it.
type Operation struct {
	// OldRange is the range that was replaced, in pre-edit coordinates.
	OldRange buffer.PointRange
	// NewRange covers the inserted text, in post-edit coordinates.
	NewRange buffer.PointRange

	OldText string
	NewText string

	CursorBefore buffer.Point
	CursorAfter  buffer.Point

	Timestamp time.Time
}

// FromEditResult builds an operation from a buffer edit result.
func FromEditResult(res buffer.EditResult, newText string, before, after buffer.Point) Operation {
	return Operation{
		OldRange:     res.OldRange,
		NewRange:     res.NewRange,
		OldText:      res.OldText,
		NewText:      newText,
		CursorBefore: before,
		CursorAfter:  after,
		Timestamp:    time.Now(),
	}
}

// IsInsert returns true if the operation only inserted text.
func (op Operation) IsInsert() bool {
	return op.OldRange.IsEmpty() && op.NewText != ""
}

// Description returns a short label for the operation.
func (op Operation) Description() string {
	switch {
	case op.IsInsert():
		return fmt.Sprintf("insert %q at %s", op.NewText, op.OldRange.Start)
	case op.NewText == "":
		return fmt.Sprintf("delete %s", op.OldRange)
	default:
		return fmt.Sprintf("replace %s with %q", op.OldRange, op.NewText)
	}
}

// undo restores the pre-edit text.
func (op Operation) undo(buf *buffer.Buffer) error {
	_, err := buf.Replace(op.NewRange, op.OldText)
	return err
}

// redo re-applies the edit.
func (op Operation) redo(buf *buffer.Buffer) error {
	_, err := buf.Replace(op.OldRange, op.NewText)
	return err
}
