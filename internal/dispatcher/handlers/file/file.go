// Package file provides handlers for saving and reloading the document.
package file

import (
	"errors"
	"fmt"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/input"
)

// Action names for file operations.
const (
	ActionSave   = "file.save"
	ActionSaveAs = "file.saveAs"
	ActionReload = "file.reload"
)

// ErrUnsavedChanges is returned by a non-forced reload of a modified document.
var ErrUnsavedChanges = errors.New("document has unsaved changes")

// Handler implements namespace-based file operation handling.
type Handler struct{}

// NewHandler creates a new file handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the file namespace.
func (h *Handler) Namespace() string {
	return "file"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionSave, ActionSaveAs, ActionReload:
		return true
	}
	return false
}

// HandleAction processes a file action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionSave:
		return h.save(ctx)
	case ActionSaveAs:
		return h.saveAs(ctx, action.Args.Text)
	case ActionReload:
		return h.reload(ctx, action.Args.GetBool("force"))
	default:
		return handler.Errorf("unknown file action: %s", action.Name)
	}
}

func (h *Handler) save(ctx *execctx.ExecutionContext) handler.Result {
	if !ctx.IsModified() {
		return handler.NoOpWithMessage("No changes to save")
	}
	if err := ctx.Engine.Save(); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Wrote %s", ctx.FilePath()))
}

// saveAs writes the document to path, which becomes its file.
func (h *Handler) saveAs(ctx *execctx.ExecutionContext, path string) handler.Result {
	if path == "" {
		return handler.Errorf("%s: missing path", ActionSaveAs)
	}
	if err := ctx.Engine.SaveAs(path); err != nil {
		return handler.Error(err)
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Wrote %s", path))
}

// reload refuses to discard local changes unless force is set.
func (h *Handler) reload(ctx *execctx.ExecutionContext, force bool) handler.Result {
	if ctx.IsModified() && !force {
		return handler.Error(fmt.Errorf("reload %s: %w", ctx.FilePath(), ErrUnsavedChanges))
	}

	changed, err := ctx.Engine.Reload()
	if err != nil {
		if errors.Is(err, engine.ErrNoPath) {
			return handler.NoOpWithMessage("No file to reload")
		}
		return handler.Error(err)
	}
	if !changed {
		return handler.NoOp()
	}
	return handler.SuccessWithMessage(fmt.Sprintf("Reloaded %s", ctx.FilePath())).WithRedraw()
}
