package app

import (
	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/file"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/orgmode"
	"github.com/dshills/orgmode/internal/event"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/outline"
)

// publishResult is a post-dispatch hook that turns completed outline and
// file actions into bus events.
func (app *Application) publishResult(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if ev, ok := resultEvent(action.Name, ctx.FilePath(), *result); ok {
		app.publish(ev)
	}
}

// resultEvent maps an action result to the event it announces.
func resultEvent(name, path string, result handler.Result) (event.Event, bool) {
	switch name {
	case orgmode.ActionNavigate:
		kind := result.GetDataString("action")
		if !result.IsOK() || len(result.Edits) == 0 || kind == "" || kind == outline.ActionNone.String() {
			return event.Event{}, false
		}
		edit := result.Edits[0]
		payload := map[string]any{
			"line": edit.Range.Start.Line,
			"text": edit.NewText,
		}
		topic := event.Topic("outline." + kind)
		if topic == event.TopicOutlineSummary {
			payload["checked"] = result.GetDataInt("checked")
			payload["total"] = result.GetDataInt("total")
		}
		return event.New(topic, payload), true

	case orgmode.ActionExpand:
		if !result.GetDataBool("expanded") {
			return event.Event{}, false
		}
		return event.New(event.TopicOutlineExpand, nil), true

	case file.ActionSave, file.ActionSaveAs:
		if !result.IsOK() {
			return event.Event{}, false
		}
		return event.New(event.TopicDocumentSaved, map[string]any{"path": path}), true

	case file.ActionReload:
		if !result.IsOK() {
			return event.Event{}, false
		}
		return event.New(event.TopicDocumentReloaded, map[string]any{"path": path, "external": false}), true
	}
	return event.Event{}, false
}

// publish sends ev on the bus. Subscriber failures are logged by the bus.
func (app *Application) publish(ev event.Event) {
	if app.events == nil {
		return
	}
	_ = app.events.Publish(ev)
}
