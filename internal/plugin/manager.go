package plugin

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
	"github.com/dshills/orgmode/internal/plugin/api"
	plua "github.com/dshills/orgmode/internal/plugin/lua"
)

// Manager runs user scripts against the open document.
type Manager struct {
	mu sync.Mutex

	state  *plua.State
	module *api.OrgModule
	logger *logging.Logger

	events  api.EventBus
	timeout time.Duration
	scripts []string
	closed  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager's logger. Script print output goes here too.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithTimeout sets the execution deadline for scripts and their commands.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.timeout = d
	}
}

// WithEvents lets scripts subscribe to bus with org.on.
func WithEvents(bus api.EventBus) Option {
	return func(m *Manager) {
		m.events = bus
	}
}

// NewManager creates a Manager bound to host.
// commands receives the actions scripts register; it may be nil.
func NewManager(host outline.Host, nav *outline.Navigator, commands api.CommandRegistry, opts ...Option) (*Manager, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	m := &Manager{timeout: plua.DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithComponent("plugin")

	state, err := plua.NewState(
		plua.WithExecutionTimeout(m.timeout),
		plua.WithPrint(func(msg string) {
			m.logger.Info("script output", "msg", msg)
		}),
	)
	if err != nil {
		return nil, err
	}

	var modOpts []api.ModuleOption
	if m.events != nil {
		modOpts = append(modOpts, api.WithEvents(m.events))
	}
	m.module = api.NewOrgModule(host, nav, commands, state, m.logger, modOpts...)
	if err := state.Register(m.module.Register); err != nil {
		state.Close()
		return nil, err
	}

	m.state = state
	return m, nil
}

// LoadFile runs the script at path.
func (m *Manager) LoadFile(path string) error {
	return m.load(path, func() error {
		return m.state.DoFile(path)
	})
}

// LoadString runs code under the given script name.
func (m *Manager) LoadString(name, code string) error {
	return m.load(name, func() error {
		return m.state.DoString(code)
	})
}

// LoadFiles runs every script in order. A failing script does not stop
// the others; all failures are returned joined.
func (m *Manager) LoadFiles(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := m.LoadFile(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) load(name string, run func() error) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return &ScriptError{Script: name, Err: ErrClosed}
	}
	m.mu.Unlock()

	start := time.Now()
	if err := run(); err != nil {
		m.logger.Error("script failed", "script", filepath.Base(name), "err", err)
		return &ScriptError{Script: name, Err: err}
	}

	m.mu.Lock()
	m.scripts = append(m.scripts, name)
	m.mu.Unlock()

	m.logger.Info("script loaded", "script", filepath.Base(name), "elapsed", time.Since(start))
	return nil
}

// Scripts returns the names of successfully loaded scripts.
func (m *Manager) Scripts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.scripts))
	copy(out, m.scripts)
	return out
}

// Commands returns the action names registered by scripts.
func (m *Manager) Commands() []string {
	return m.module.Commands()
}

// Close drops script event subscriptions and releases the Lua state.
// Registered commands fail afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.module.Release()
	m.state.Close()
	m.logger.Debug("plugin manager closed")
}
