// Package orgmode provides handlers for the outline actions.
package orgmode

import (
	"fmt"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/outline"
)

// Action names for outline operations.
const (
	ActionNavigate = "orgmode.navigate"
	ActionExpand   = "orgmode.expand"
)

// Handler runs the outline navigator against the execution context's engine.
type Handler struct {
	nav *outline.Navigator
}

// NewHandler creates a handler around nav. A nil nav uses the defaults.
func NewHandler(nav *outline.Navigator) *Handler {
	if nav == nil {
		nav = outline.NewNavigator()
	}
	return &Handler{nav: nav}
}

// Namespace returns the orgmode namespace.
func (h *Handler) Namespace() string {
	return "orgmode"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == ActionNavigate || actionName == ActionExpand
}

// HandleAction processes an outline action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionNavigate:
		return h.navigate(ctx)
	case ActionExpand:
		return h.expand(ctx)
	default:
		return handler.Errorf("unknown orgmode action: %s", action.Name)
	}
}

func (h *Handler) navigate(ctx *execctx.ExecutionContext) handler.Result {
	if !h.nav.Applies(ctx.Engine) {
		return h.notOutline()
	}
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	out, err := h.nav.Navigate(ctx.Engine)
	if err != nil {
		return handler.Error(err)
	}

	result := handler.Success().
		WithRedraw().
		WithEdit(handler.Edit{Range: out.Range, NewText: out.Text}).
		WithData("action", out.Action.String())

	switch out.Action {
	case outline.ActionToggle:
		return result.WithMessage("[" + out.Text + "]")
	case outline.ActionSummary:
		return result.
			WithData("checked", out.Checked).
			WithData("total", out.Total).
			WithMessage("[" + out.Text + "]")
	default:
		return result
	}
}

func (h *Handler) expand(ctx *execctx.ExecutionContext) handler.Result {
	if !h.nav.Expand(ctx.Engine) {
		return h.notOutline()
	}
	return handler.NoOpWithMessage("Expanding...").WithData("expanded", true)
}

func (h *Handler) notOutline() handler.Result {
	return handler.NoOpWithMessage(fmt.Sprintf("not a %s document", h.nav.LanguageID()))
}
