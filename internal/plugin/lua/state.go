package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds a single script run or callback.
const DefaultExecutionTimeout = 2 * time.Second

// State wraps a gopher-lua state with a sandbox and execution deadlines.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	print            PrintFunc

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the deadline applied to every run.
// Non-positive values keep the default.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d > 0 {
			s.executionTimeout = d
		}
	}
}

// WithPrint routes the output of the print builtin to fn.
func WithPrint(fn PrintFunc) StateOption {
	return func(s *State) {
		s.print = fn
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	s.L = L

	openSafeLibraries(L)

	s.sandbox = NewSandbox(L, s.print)
	s.sandbox.Install()

	return s, nil
}

// openSafeLibraries opens only base, table, string and math.
// io, os, debug, package and channel stay closed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// ExecutionTimeout returns the per-run deadline.
func (s *State) ExecutionTimeout() time.Duration {
	return s.executionTimeout
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.run(func() error {
		return s.L.DoFile(path)
	})
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.run(func() error {
		return s.L.DoString(code)
	})
}

// Call calls the global function name.
func (s *State) Call(name string, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}
	fn := s.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("%w: %s (got %s)", ErrNotFunction, name, fn.Type())
	}
	return s.call(fn, args)
}

// CallFunction calls a function value held by Go code.
// Returns an empty slice if the function returns no values.
func (s *State) CallFunction(fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}
	if fn == nil || fn.Type() != lua.LTFunction {
		return nil, ErrNotFunction
	}
	return s.call(fn, args)
}

// CallFunctionWith is CallFunction with arguments built under the state
// lock, for values such as tables that must be created by the state.
func (s *State) CallFunctionWith(fn lua.LValue, args func(L *lua.LState) []lua.LValue) ([]lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}
	if fn == nil || fn.Type() != lua.LTFunction {
		return nil, ErrNotFunction
	}
	var argv []lua.LValue
	if args != nil {
		argv = args(s.L)
	}
	return s.call(fn, argv)
}

func (s *State) call(fn lua.LValue, args []lua.LValue) ([]lua.LValue, error) {
	top := s.L.GetTop()
	err := s.run(func() error {
		return s.L.CallByParam(lua.P{Fn: fn, NRet: lua.MultRet, Protect: true}, args...)
	})
	if err != nil {
		s.L.SetTop(top)
		return nil, err
	}

	n := s.L.GetTop() - top
	results := make([]lua.LValue, 0, n)
	for i := 1; i <= n; i++ {
		results = append(results, s.L.Get(top+i))
	}
	s.L.SetTop(top)
	return results, nil
}

// run executes fn under the execution deadline with panic recovery.
// The caller holds s.mu.
func (s *State) run(fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.executionTimeout)
	defer cancel()

	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrExecutionTimeout, s.executionTimeout)
		}
	}()
	return fn()
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value lua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.SetGlobal(name, value)
	}
}

// GetGlobal returns a global variable, or LNil on a closed state.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Register exposes L to fn under the state lock, for installing modules.
func (s *State) Register(fn func(L *lua.LState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	return fn(s.L)
}

// Close releases the Lua state. It is safe to call more than once.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
