package history

import (
	"errors"
	"testing"

	"github.com/dshills/orgmode/internal/engine/buffer"
)

func apply(t *testing.T, h *History, buf *buffer.Buffer, r buffer.PointRange, text string) {
	t.Helper()
	res, err := buf.ApplyEdit(buffer.NewEdit(r, text))
	if err != nil {
		t.Fatalf("apply edit: %v", err)
	}
	h.Push(FromEditResult(res, text, r.Start, res.NewRange.End))
}

func TestUndoRedoToggle(t *testing.T) {
	buf := buffer.NewBufferFromString("- [ ] a")
	h := NewHistory(10)

	r := buffer.NewPointRange(buffer.Point{Line: 0, Column: 3}, buffer.Point{Line: 0, Column: 4})
	apply(t, h, buf, r, "X")

	op, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if buf.Text() != "- [ ] a" {
		t.Errorf("after undo: %q", buf.Text())
	}
	if op.CursorBefore != r.Start {
		t.Errorf("unexpected cursor before %s", op.CursorBefore)
	}

	if _, err := h.Redo(buf); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if buf.Text() != "- [X] a" {
		t.Errorf("after redo: %q", buf.Text())
	}
}

func TestUndoNewlineInsert(t *testing.T) {
	buf := buffer.NewBufferFromString("hello world")
	h := NewHistory(10)

	p := buffer.Point{Line: 0, Column: 5}
	apply(t, h, buf, buffer.PointRange{Start: p, End: p}, "\n")
	if buf.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", buf.LineCount())
	}

	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if buf.Text() != "hello world" {
		t.Errorf("after undo: %q", buf.Text())
	}
}

func TestEmptyStacks(t *testing.T) {
	h := NewHistory(0)
	buf := buffer.NewBuffer()

	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if _, err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestPushClearsRedo(t *testing.T) {
	buf := buffer.NewBufferFromString("ab")
	h := NewHistory(10)

	apply(t, h, buf, buffer.NewPointRange(buffer.Point{Column: 0}, buffer.Point{Column: 1}), "x")
	if _, err := h.Undo(buf); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("expected redo available")
	}
	apply(t, h, buf, buffer.NewPointRange(buffer.Point{Column: 1}, buffer.Point{Column: 2}), "y")
	if h.CanRedo() {
		t.Error("push should clear redo stack")
	}
}

func TestMaxEntries(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		p := buffer.Point{Column: i}
		apply(t, h, buf, buffer.PointRange{Start: p, End: p}, "a")
	}
	if h.UndoCount() != 3 {
		t.Errorf("expected 3 entries, got %d", h.UndoCount())
	}

	h.Clear()
	if h.CanUndo() {
		t.Error("expected empty history after Clear")
	}
}

func TestOperationDescription(t *testing.T) {
	p := buffer.Point{Line: 1, Column: 2}
	ins := Operation{OldRange: buffer.PointRange{Start: p, End: p}, NewText: "\n"}
	if !ins.IsInsert() {
		t.Error("expected insert")
	}
	if got := ins.Description(); got != `insert "\n" at (1:2)` {
		t.Errorf("unexpected description %q", got)
	}
}
