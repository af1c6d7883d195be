package app

import (
	"path/filepath"

	"github.com/dshills/orgmode/internal/renderer"
	"github.com/dshills/orgmode/internal/renderer/statusline"
)

// render redraws the whole screen.
func (app *Application) render() {
	app.mu.Lock()
	r := app.renderer
	msg, kind := app.message, app.messageType
	app.mu.Unlock()
	if r == nil {
		return
	}

	status := r.StatusLine()
	name := ""
	if p := app.engine.Path(); p != "" {
		name = filepath.Base(p)
	}
	status.SetFilename(name)
	status.SetModified(app.engine.Modified())
	status.SetReadOnly(app.engine.ReadOnly())
	status.SetLanguage(app.engine.LanguageID())
	if msg == "" {
		status.ClearMessage()
	} else {
		status.SetMessage(msg, kind)
	}

	r.Render(app.engine.Snapshot(), app.engine.Cursor(), app.navigator.Applies(app.engine))
}

// newRenderer creates the renderer for the current backend.
func (app *Application) newRenderer() *renderer.Renderer {
	return renderer.New(app.backend,
		renderer.WithTabWidth(app.config.Editor.TabWidth),
		renderer.WithScrollMargin(app.config.Editor.ScrollMargin),
	)
}

func (app *Application) setMessage(msg string, kind statusline.MessageType) {
	app.mu.Lock()
	app.message, app.messageType = msg, kind
	app.mu.Unlock()
}
