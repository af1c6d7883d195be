package app

import (
	"fmt"
	"io"

	"github.com/dshills/orgmode/internal/config"
	"github.com/dshills/orgmode/internal/dispatcher"
	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/cursor"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/edit"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/file"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/orgmode"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/event"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/input/keymap"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
	"github.com/dshills/orgmode/internal/plugin"
	"github.com/dshills/orgmode/internal/renderer/statusline"
	"github.com/dshills/orgmode/internal/watcher"
)

// ActionQuit is the application-level quit action.
const ActionQuit = "app.quit"

// bootstrapper starts components in dependency order.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{app: app, opts: opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"config", b.initConfig},
		{"logging", b.initLogging},
		{"events", b.initEvents},
		{"document", b.initDocument},
		{"dispatcher", b.initDispatcher},
		{"keymap", b.initKeymap},
		{"plugins", b.initPlugins},
		{"watcher", b.initWatcher},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return &InitError{Component: step.name, Err: err}
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	if b.opts.Config != nil {
		b.app.config = b.opts.Config
		return b.app.config.Validate()
	}

	path := b.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogging() error {
	cfg := b.app.config

	level := cfg.LogLevel()
	if b.opts.LogLevel != "" {
		l, err := logging.ParseLevel(b.opts.LogLevel)
		if err != nil {
			return err
		}
		level = l
	}

	// The terminal owns stderr while the editor runs, so logs go to a
	// file or nowhere.
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
		if cfg.Logging.File != "" {
			f, err := logging.OpenFile(cfg.Logging.File)
			if err != nil {
				return err
			}
			b.app.logFile = f
			out = f
		}
	}

	b.app.logger = logging.New(logging.Config{
		Level:           level,
		Output:          out,
		Prefix:          "orgmode",
		ReportTimestamp: true,
	})
	return nil
}

func (b *bootstrapper) initDocument() error {
	cfg := b.app.config

	opts := []engine.Option{engine.WithTabWidth(cfg.Editor.TabWidth)}
	if le, ok := cfg.LineEnding(); ok {
		opts = append(opts, engine.WithLineEnding(le))
	}
	if b.opts.ReadOnly {
		opts = append(opts, engine.WithReadOnly())
	}

	b.app.navigator = outline.NewNavigator(
		outline.WithLanguageID(cfg.Outline.LanguageID),
		outline.WithCheckedMarker(cfg.Outline.CheckedMarker),
		outline.WithLogger(b.app.logger.WithComponent("outline")),
	)

	if b.opts.Path == "" {
		opts = append(opts, engine.WithLanguageID(cfg.Outline.LanguageID))
		b.app.engine = engine.New(opts...)
		return nil
	}

	opts = append(opts, engine.WithLanguageID(cfg.LanguageFor(b.opts.Path)))
	e, err := engine.Open(b.opts.Path, opts...)
	if err != nil {
		return err
	}
	b.app.engine = e
	return nil
}

func (b *bootstrapper) initEvents() error {
	b.app.events = event.NewBus(event.WithLogger(b.app.logger))
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetEngine(b.app.engine)
	d.SetLogger(b.app.logger.WithComponent("dispatcher"))

	d.RegisterNamespace("orgmode", orgmode.NewHandler(b.app.navigator))
	d.RegisterNamespace("cursor", cursor.NewHandler())
	d.RegisterNamespace("edit", edit.NewHandler())
	d.RegisterNamespace("file", file.NewHandler())
	d.RegisterHandlerFunc(ActionQuit, b.app.handleQuit)
	d.RegisterPostHook(dispatcher.PostDispatchFunc(b.app.publishResult))

	b.app.dispatcher = d
	return nil
}

func (b *bootstrapper) initKeymap() error {
	km := keymap.Default()
	if err := km.Merge(b.app.config.Keymap); err != nil {
		return err
	}
	b.app.keymap = km
	return nil
}

// initPlugins loads the configured scripts. Script failures are reported
// but do not stop startup.
func (b *bootstrapper) initPlugins() error {
	pc := b.app.config.Plugins
	m, err := plugin.NewManager(b.app.engine, b.app.navigator, b.app.dispatcher,
		plugin.WithLogger(b.app.logger),
		plugin.WithTimeout(pc.Timeout.Std()),
		plugin.WithEvents(b.app.events),
	)
	if err != nil {
		return err
	}
	b.app.plugins = m

	if err := m.LoadFiles(pc.Scripts); err != nil {
		b.app.message = fmt.Sprintf("Plugin error: %v", err)
		b.app.messageType = statusline.MessageError
	}
	return nil
}

// initWatcher watches the document for external changes. A missing
// watcher only disables auto-reload.
func (b *bootstrapper) initWatcher() error {
	path := b.app.engine.Path()
	if b.opts.NoWatch || path == "" {
		return nil
	}

	w, err := watcher.New(path,
		watcher.WithDebounce(watcher.DefaultDebounce),
		watcher.WithLogger(b.app.logger),
	)
	if err != nil {
		b.app.logger.Warn("file watcher unavailable", "path", path, "err", err)
		return nil
	}
	b.app.watcher = w
	return nil
}

// handleQuit ends the event loop. With unsaved changes the first quit
// only warns; a second consecutive quit, or force, exits anyway.
func (app *Application) handleQuit(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	app.mu.Lock()
	armed := app.quitArmed
	app.quitArmed = false
	app.mu.Unlock()

	force := action.Args.GetBool("force")
	if ctx.Engine != nil && ctx.Engine.Modified() && !force && !armed {
		app.mu.Lock()
		app.quitArmed = true
		app.mu.Unlock()
		return handler.NoOpWithMessage("Unsaved changes (quit again to discard)")
	}
	return handler.Success().WithData(dataQuit, true)
}

// dataQuit marks a result that ends the event loop.
const dataQuit = "quit"
