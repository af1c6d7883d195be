package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/dshills/orgmode/internal/dispatcher"
	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/cursor"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/orgmode"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/outline"
)

func newDispatcher(content string) (*dispatcher.Dispatcher, *engine.Engine) {
	e := engine.New(
		engine.WithContent(content),
		engine.WithLanguageID(outline.DefaultLanguageID),
	)
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetEngine(e)
	d.RegisterNamespace("orgmode", orgmode.NewHandler(nil))
	d.RegisterNamespace("cursor", cursor.NewHandler())
	return d, e
}

func TestDispatchNavigate(t *testing.T) {
	d, e := newDispatcher("- [ ] task\n- [/] parent\n  - [x] child")
	e.SetCursor(engine.Point{Line: 0, Column: 3})

	result := d.Dispatch(input.NewAction(orgmode.ActionNavigate))
	if !result.IsOK() {
		t.Fatalf("dispatch failed: %v", result.Error)
	}
	if got := e.LineText(0); got != "- [X] task" {
		t.Errorf("unexpected line %q", got)
	}

	e.SetCursor(engine.Point{Line: 1, Column: 3})
	d.Dispatch(input.NewAction(orgmode.ActionNavigate))
	if got := e.LineText(1); got != "- [1/1] parent" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestDispatchCount(t *testing.T) {
	d, e := newDispatcher("a\nb\nc\nd")

	d.Dispatch(input.NewAction(cursor.ActionMoveDown).WithCount(2))
	if got := e.CursorPoint().Line; got != 2 {
		t.Errorf("expected line 2, got %d", got)
	}
}

func TestDispatchMaxRepeatCount(t *testing.T) {
	e := engine.New(engine.WithContent("a\nb\nc\nd"))
	d := dispatcher.New(dispatcher.DefaultConfig().WithMaxRepeatCount(1))
	d.SetEngine(e)
	d.RegisterNamespace("cursor", cursor.NewHandler())

	d.Dispatch(input.NewAction(cursor.ActionMoveDown).WithCount(3))
	if got := e.CursorPoint().Line; got != 1 {
		t.Errorf("expected count clamped to 1, got line %d", got)
	}
}

func TestDispatchErrors(t *testing.T) {
	d, _ := newDispatcher("")

	tests := []struct {
		name   string
		action input.Action
		want   error
	}{
		{"empty name", input.Action{}, dispatcher.ErrInvalidAction},
		{"unknown action", input.NewAction("nope.nothing"), dispatcher.ErrNoHandler},
		{"declined by namespace", input.NewAction("orgmode.fold"), dispatcher.ErrNoHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := d.Dispatch(tt.action)
			if !errors.Is(result.Error, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, result.Error)
			}
		})
	}
}

func TestDispatchNoEngine(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterNamespace("orgmode", orgmode.NewHandler(nil))

	result := d.Dispatch(input.NewAction(orgmode.ActionNavigate))
	if !errors.Is(result.Error, execctx.ErrMissingEngine) {
		t.Errorf("expected ErrMissingEngine, got %v", result.Error)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	d, _ := newDispatcher("")
	d.RegisterHandlerFunc("test.panic", func(input.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(input.NewAction("test.panic"))
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if d.Metrics().TotalPanics() != 1 {
		t.Errorf("expected 1 panic recorded, got %d", d.Metrics().TotalPanics())
	}
}

func TestRegistryFallback(t *testing.T) {
	d, _ := newDispatcher("")

	called := false
	d.RegisterHandlerFunc("app.quit", func(input.Action, *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	if !d.CanDispatch("app.quit") {
		t.Error("expected app.quit to be dispatchable")
	}
	if result := d.Dispatch(input.NewAction("app.quit")); !result.IsOK() || !called {
		t.Errorf("registry handler not called: %+v", result)
	}

	d.UnregisterHandler("app.quit")
	if d.CanDispatch("app.quit") {
		t.Error("expected app.quit to be gone")
	}
}

func TestHooks(t *testing.T) {
	d, e := newDispatcher("a\nb")

	var seen []string
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext) bool {
		seen = append(seen, "pre:"+action.Name)
		return action.Name != cursor.ActionMoveUp
	}))
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
		seen = append(seen, "post:"+action.Name)
		result.Message = "hooked"
	}))

	result := d.Dispatch(input.NewAction(cursor.ActionMoveDown))
	if result.Message != "hooked" {
		t.Errorf("post hook did not modify result: %q", result.Message)
	}
	if e.CursorPoint().Line != 1 {
		t.Errorf("expected cursor on line 1")
	}

	result = d.Dispatch(input.NewAction(cursor.ActionMoveUp))
	if result.Status != handler.StatusCancelled {
		t.Errorf("expected cancelled, got %v", result.Status)
	}
	if e.CursorPoint().Line != 1 {
		t.Errorf("cancelled action moved the cursor")
	}

	want := []string{"pre:" + cursor.ActionMoveDown, "post:" + cursor.ActionMoveDown, "pre:" + cursor.ActionMoveUp}
	if len(seen) != len(want) {
		t.Fatalf("hooks ran %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("hook %d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestMetrics(t *testing.T) {
	d, _ := newDispatcher("a\nb\nc")

	for i := 0; i < 3; i++ {
		d.Dispatch(input.NewAction(cursor.ActionMoveDown))
	}
	d.Dispatch(input.NewAction(orgmode.ActionExpand))

	m := d.Metrics()
	if m.TotalDispatches() != 4 {
		t.Errorf("expected 4 dispatches, got %d", m.TotalDispatches())
	}
	stats := m.ActionStats(cursor.ActionMoveDown)
	if stats == nil || stats.DispatchCount != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	top := m.TopActions(1)
	if len(top) != 1 || top[0].Name != cursor.ActionMoveDown {
		t.Errorf("unexpected top actions %+v", top)
	}
}
