// Package cursor provides handlers for cursor movement.
package cursor

import (
	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/engine/cursor"
	"github.com/dshills/orgmode/internal/input"
)

// Action names for cursor operations.
const (
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
	ActionPageUp        = "cursor.pageUp"
	ActionPageDown      = "cursor.pageDown"
)

// DefaultPageSize is used for page motions when the context has no view.
const DefaultPageSize = 20

type motion func(cursor.Cursor, cursor.LineReader) cursor.Cursor

// Handler implements namespace-based cursor movement handling.
type Handler struct {
	motions map[string]motion
}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{
		motions: map[string]motion{
			ActionMoveUp:        cursor.Cursor.Up,
			ActionMoveDown:      cursor.Cursor.Down,
			ActionMoveLeft:      cursor.Cursor.Left,
			ActionMoveRight:     cursor.Cursor.Right,
			ActionMoveLineStart: cursor.Cursor.LineStart,
			ActionMoveLineEnd:   cursor.Cursor.LineEnd,
			ActionPageUp:        cursor.Cursor.Up,
			ActionPageDown:      cursor.Cursor.Down,
		},
	}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	_, ok := h.motions[actionName]
	return ok
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	move, ok := h.motions[action.Name]
	if !ok {
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	count := ctx.GetCount()
	if action.Name == ActionPageUp || action.Name == ActionPageDown {
		count *= pageSize(ctx)
	}

	before := ctx.Engine.CursorPoint()
	after := ctx.Engine.MoveCursor(func(c cursor.Cursor, r cursor.LineReader) cursor.Cursor {
		for i := 0; i < count; i++ {
			c = move(c, r)
		}
		return c
	})

	if after == before {
		return handler.NoOp()
	}
	return handler.Success().WithRedraw()
}

func pageSize(ctx *execctx.ExecutionContext) int {
	if ctx.ViewHeight > 1 {
		return ctx.ViewHeight - 1
	}
	return DefaultPageSize
}
