package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   PointRange // The range to replace
	NewText string     // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r PointRange, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a point.
func NewInsert(p Point, text string) Edit {
	return Edit{
		Range:   PointRange{Start: p, End: p},
		NewText: text,
	}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange PointRange // The original range that was modified
	NewRange PointRange // The resulting range after the edit
	OldText  string     // The text that was replaced (if any)
}
