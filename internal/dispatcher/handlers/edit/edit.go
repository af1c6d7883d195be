// Package edit provides handlers for undo and redo.
package edit

import (
	"errors"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/input"
)

// Action names for history operations.
const (
	ActionUndo = "edit.undo"
	ActionRedo = "edit.redo"
)

// Handler implements namespace-based undo/redo handling.
type Handler struct{}

// NewHandler creates a new edit handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the edit namespace.
func (h *Handler) Namespace() string {
	return "edit"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionUndo || actionName == ActionRedo
}

// HandleAction processes an edit action. The repeat count undoes or redoes
// that many edits, stopping early when history runs out.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	var (
		step  func() error
		empty error
		limit string
	)
	switch action.Name {
	case ActionUndo:
		step, empty, limit = ctx.Engine.Undo, engine.ErrNothingToUndo, "oldest"
	case ActionRedo:
		step, empty, limit = ctx.Engine.Redo, engine.ErrNothingToRedo, "newest"
	default:
		return handler.Errorf("unknown edit action: %s", action.Name)
	}

	done := 0
	for i := 0; i < ctx.GetCount(); i++ {
		err := step()
		if errors.Is(err, empty) {
			break
		}
		if err != nil {
			return handler.Error(err)
		}
		done++
	}

	if done == 0 {
		return handler.NoOpWithMessage("Already at " + limit + " change")
	}
	return handler.Success().WithRedraw().WithData("count", done)
}
