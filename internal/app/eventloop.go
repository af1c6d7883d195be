package app

import (
	"errors"
	"fmt"

	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/event"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/renderer"
	"github.com/dshills/orgmode/internal/renderer/backend"
	"github.com/dshills/orgmode/internal/renderer/statusline"
	"github.com/dshills/orgmode/internal/watcher"
)

// Run draws the document and processes events until quit or Shutdown.
// A quit returns nil.
func (app *Application) Run() error {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.logger.Info("orgmode activated",
		"path", app.engine.Path(),
		"language", app.engine.LanguageID(),
		"outline", app.navigator.Applies(app.engine),
		"plugins", len(app.plugins.Scripts()),
	)

	if app.watcher != nil {
		go app.forwardWatcher(b)
	}

	app.render()
	for {
		ev := b.PollEvent()

		select {
		case <-app.done:
			return nil
		default:
		}

		err := app.handleEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		app.render()
	}
}

// forwardWatcher turns watcher events into backend interrupts so that
// reloads happen on the event loop goroutine.
func (app *Application) forwardWatcher(b backend.Backend) {
	for {
		select {
		case <-app.done:
			return
		case ev, ok := <-app.watcher.Events():
			if !ok {
				return
			}
			b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ev})
		case err, ok := <-app.watcher.Errors():
			if !ok {
				return
			}
			app.logger.Warn("watcher error", "err", err)
		}
	}
}

// handleEvent processes one backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.dispatcher.SetViewHeight(renderer.TextRows(ev.Height))
		app.mu.Lock()
		if app.renderer != nil {
			app.renderer.Resize(ev.Height)
		}
		app.mu.Unlock()
		return nil
	case backend.EventInterrupt:
		if fe, ok := ev.Data.(watcher.Event); ok {
			app.handleFileEvent(fe)
		}
		return nil
	default:
		return nil
	}
}

// handleKey maps a key to its bound action and dispatches it.
func (app *Application) handleKey(ev backend.Event) error {
	name := backend.KeyName(ev)
	if name == "" {
		return nil
	}
	binding, ok := app.keymap.Lookup(name)
	if !ok {
		app.logger.Debug("unbound key", "key", name)
		return nil
	}

	action := input.Action{
		Name:   binding.Action,
		Source: input.SourceKeyboard,
		Args:   input.ActionArgs{Extra: binding.Args},
	}
	if action.Name != ActionQuit {
		app.mu.Lock()
		app.quitArmed = false
		app.mu.Unlock()
	}
	return app.execute(action)
}

// execute dispatches action and records its message for the status line.
func (app *Application) execute(action input.Action) error {
	result := app.dispatcher.Dispatch(action)
	app.applyResult(result)
	if result.GetDataBool(dataQuit) {
		return ErrQuit
	}
	return nil
}

func (app *Application) applyResult(result handler.Result) {
	switch {
	case result.IsError():
		app.setMessage(fmt.Sprintf("Error: %v", result.Error), statusline.MessageError)
	case result.Message != "":
		app.setMessage(result.Message, statusline.MessageInfo)
	case result.Status == handler.StatusOK:
		app.setMessage("", statusline.MessageNone)
	}
}

// handleFileEvent reloads the document after an external change. Local
// changes are never discarded; the user is told instead.
func (app *Application) handleFileEvent(ev watcher.Event) {
	log := app.logger.With("path", ev.Path, "op", ev.Op)

	if app.engine.Modified() {
		log.Info("external change ignored, buffer modified")
		app.setMessage("File changed on disk; buffer has unsaved changes", statusline.MessageWarning)
		return
	}

	changed, err := app.engine.Reload()
	if err != nil {
		if ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) {
			log.Info("file removed externally")
			app.setMessage("File removed on disk", statusline.MessageWarning)
			return
		}
		log.Warn("reload failed", "err", err)
		app.setMessage(fmt.Sprintf("Error: %v", err), statusline.MessageError)
		return
	}
	if changed {
		log.Info("reloaded after external change")
		app.setMessage("Reloaded (changed on disk)", statusline.MessageInfo)
		app.publish(event.New(event.TopicDocumentReloaded, map[string]any{"path": ev.Path, "external": true}))
	}
}
