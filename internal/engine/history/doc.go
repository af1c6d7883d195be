// Package history provides undo/redo for the editing engine.
//
// Every edit applied to a buffer is recorded as an Operation holding the
// replaced range, the old and new text and the cursor before and after:
//
//	h := history.NewHistory(1000)
//	res, _ := buf.ApplyEdit(edit)
//	h.Push(history.FromEditResult(res, edit.NewText, before, after))
//
//	op, err := h.Undo(buf) // buf is restored, op.CursorBefore is where the cursor goes
//
// Pushing a new operation clears the redo stack. The undo stack is bounded;
// the oldest entries are dropped once the limit is reached.
package history
