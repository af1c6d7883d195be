package edit

import (
	"errors"
	"testing"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/input"
)

func editedEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(engine.WithContent("abc"))
	for _, s := range []string{"1", "2", "3"} {
		if _, err := e.InsertAt(engine.Point{Line: 0, Column: 0}, s); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}
	return e
}

func TestUndoRedo(t *testing.T) {
	e := editedEngine(t)
	h := NewHandler()
	ctx := execctx.New().WithEngine(e)

	result := h.HandleAction(input.Action{Name: ActionUndo}, ctx)
	if !result.IsOK() {
		t.Fatalf("undo failed: %+v", result)
	}
	if e.Text() != "21abc" {
		t.Errorf("after undo: %q", e.Text())
	}

	result = h.HandleAction(input.Action{Name: ActionRedo}, ctx)
	if !result.IsOK() || e.Text() != "321abc" {
		t.Errorf("after redo: %q (%v)", e.Text(), result.Status)
	}
}

func TestUndoCount(t *testing.T) {
	e := editedEngine(t)
	ctx := execctx.New().WithEngine(e).WithCount(5)

	result := NewHandler().HandleAction(input.Action{Name: ActionUndo}, ctx)
	if !result.IsOK() {
		t.Fatalf("undo failed: %+v", result)
	}
	if e.Text() != "abc" {
		t.Errorf("expected all edits undone, got %q", e.Text())
	}
	if got := result.GetDataInt("count"); got != 3 {
		t.Errorf("expected 3 undone, got %d", got)
	}
}

func TestNothingToUndo(t *testing.T) {
	tests := []struct {
		action  string
		message string
	}{
		{ActionUndo, "Already at oldest change"},
		{ActionRedo, "Already at newest change"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			ctx := execctx.New().WithEngine(engine.New())
			result := NewHandler().HandleAction(input.Action{Name: tt.action}, ctx)
			if result.Status != handler.StatusNoOp {
				t.Errorf("expected StatusNoOp, got %v", result.Status)
			}
			if result.Message != tt.message {
				t.Errorf("message = %q, want %q", result.Message, tt.message)
			}
		})
	}
}

func TestUndoReadOnly(t *testing.T) {
	ctx := execctx.New().WithEngine(engine.New(engine.WithReadOnly()))
	result := NewHandler().HandleAction(input.Action{Name: ActionUndo}, ctx)
	if !errors.Is(result.Error, execctx.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", result.Error)
	}
}
