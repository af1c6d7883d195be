package app

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/orgmode/internal/config"
	"github.com/dshills/orgmode/internal/dispatcher"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/event"
	"github.com/dshills/orgmode/internal/input/keymap"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
	"github.com/dshills/orgmode/internal/plugin"
	"github.com/dshills/orgmode/internal/renderer"
	"github.com/dshills/orgmode/internal/renderer/backend"
	"github.com/dshills/orgmode/internal/renderer/statusline"
	"github.com/dshills/orgmode/internal/watcher"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means config.DefaultPath.
	ConfigPath string

	// Config, when set, is used instead of loading ConfigPath.
	Config *config.Config

	// Path is the document to open. Empty opens a scratch outline.
	Path string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput overrides the configured log destination.
	LogOutput io.Writer

	// ReadOnly opens the document read-only.
	ReadOnly bool

	// NoWatch disables the file watcher.
	NoWatch bool
}

// Application is the central coordinator for all components.
type Application struct {
	mu sync.Mutex

	config  *config.Config
	logger  *logging.Logger
	logFile io.Closer

	engine     *engine.Engine
	navigator  *outline.Navigator
	dispatcher *dispatcher.Dispatcher
	events     *event.Bus
	keymap     *keymap.Keymap
	plugins    *plugin.Manager
	watcher    *watcher.Watcher
	backend    backend.Backend

	// View state
	renderer    *renderer.Renderer
	message     string
	messageType statusline.MessageType
	quitArmed   bool

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an Application and starts every component except the
// backend. Plugin and watcher failures are logged and reported in the
// status line; they do not stop startup.
func New(opts Options) (*Application, error) {
	app := &Application{done: make(chan struct{})}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend used by Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	app.mu.Lock()
	app.backend = b
	app.renderer = app.newRenderer()
	app.mu.Unlock()

	_, h := b.Size()
	app.dispatcher.SetViewHeight(renderer.TextRows(h))
	return nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Engine returns the document engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Dispatcher returns the action dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Events returns the application event bus.
func (app *Application) Events() *event.Bus {
	return app.events
}

// Keymap returns the active keymap.
func (app *Application) Keymap() *keymap.Keymap {
	return app.keymap
}

// Plugins returns the plugin manager.
func (app *Application) Plugins() *plugin.Manager {
	return app.plugins
}

// Message returns the status line message.
func (app *Application) Message() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.message
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Done is closed when the application shuts down.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// Shutdown releases the Lua state, the watcher and the screen.
// It is safe to call from another goroutine and more than once.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)

		if app.plugins != nil {
			app.plugins.Close()
		}
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				app.logger.Warn("watcher close failed", "err", err)
			}
		}

		app.mu.Lock()
		b := app.backend
		app.mu.Unlock()
		if b != nil {
			b.Shutdown()
		}

		app.logStats()
		app.logger.Info("orgmode stopped")
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

// logStats logs the session's dispatch statistics.
func (app *Application) logStats() {
	if app.dispatcher == nil || app.dispatcher.Metrics() == nil {
		return
	}
	m := app.dispatcher.Metrics()
	kv := []any{"dispatches", m.TotalDispatches(), "errors", m.TotalErrors(), "panics", m.TotalPanics()}
	for _, am := range m.TopActions(3) {
		kv = append(kv, am.Name, am.DispatchCount, am.Name+".avg", am.AverageActionDuration())
	}
	app.logger.Debug("dispatch stats", kv...)
}
