// Package dispatcher routes actions to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	// Core components
	registry *Registry
	router   *Router

	// Editor subsystems
	engine     execctx.EngineInterface
	logger     *logging.Logger
	viewHeight int

	// Configuration
	config Config

	// Metrics
	metrics *Metrics

	// Hooks
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the document engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// Engine returns the document engine.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// SetLogger sets the logger passed to handlers.
func (d *Dispatcher) SetLogger(logger *logging.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger.WithComponent("dispatcher")
}

// SetViewHeight records the number of visible lines for page motions.
func (d *Dispatcher) SetViewHeight(height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewHeight = height
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext()

	if action.Count > 0 {
		count := action.Count
		if d.config.MaxRepeatCount > 0 && count > d.config.MaxRepeatCount {
			count = d.config.MaxRepeatCount
		}
		ctx.Count = count
	}

	if !d.runPreHooks(&action, ctx) {
		return handler.CancelledWithMessage("cancelled by hook")
	}

	// Find handler
	h := d.router.Route(action.Name)
	if h == nil {
		h = d.registry.Get(action.Name)
	}
	if h == nil {
		result := handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
		d.logResult(action, result, time.Since(startTime))
		return result
	}

	// Execute handler
	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.runPostHooks(&action, ctx, &result)

	elapsed := time.Since(startTime)
	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, elapsed, result.Status)
	}
	d.logResult(action, result, elapsed)

	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, action.Name, r, string(stack[:n])))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return execctx.New().
		WithEngine(d.engine).
		WithLogger(d.logger).
		WithViewHeight(d.viewHeight)
}

func (d *Dispatcher) logResult(action input.Action, result handler.Result, elapsed time.Duration) {
	d.mu.RLock()
	logger := d.logger
	d.mu.RUnlock()

	if result.IsError() {
		logger.Warn("action failed", "action", action.Name, "source", action.Source, "err", result.Error)
		return
	}
	logger.Debug("action dispatched", "action", action.Name, "source", action.Source,
		"status", result.Status, "elapsed", elapsed)
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.NewHandlerFunc(fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.registry.Unregister(actionName)
}

// CanDispatch returns true if some handler accepts the action name.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	return d.router.CanRoute(actionName) || d.registry.Has(actionName)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the action router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
