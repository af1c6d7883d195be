package api

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/orgmode/internal/dispatcher/execctx"
	"github.com/dshills/orgmode/internal/dispatcher/handler"
	"github.com/dshills/orgmode/internal/event"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
)

// GlobalName is the name of the table scripts use.
const GlobalName = "org"

// ErrCommandExists is returned when a script registers a taken action name.
var ErrCommandExists = errors.New("command already registered")

// CommandRegistry is where script commands are registered.
// *dispatcher.Dispatcher satisfies it.
type CommandRegistry interface {
	CanDispatch(actionName string) bool
	RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result)
}

// Caller invokes a Lua function value outside of the Lua call that
// produced it. *lua.State from the plugin runtime satisfies it.
type Caller interface {
	CallFunction(fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error)
	CallFunctionWith(fn lua.LValue, args func(L *lua.LState) []lua.LValue) ([]lua.LValue, error)
}

// EventBus is where script event handlers subscribe.
// *event.Bus satisfies it.
type EventBus interface {
	Subscribe(pattern event.Topic, h event.Handler, opts ...event.SubscribeOption) (event.SubscriptionID, error)
	Unsubscribe(id event.SubscriptionID) bool
}

// ModuleOption configures an OrgModule.
type ModuleOption func(*OrgModule)

// WithEvents enables org.on and org.off against bus.
func WithEvents(bus EventBus) ModuleOption {
	return func(m *OrgModule) {
		m.events = bus
	}
}

// OrgModule implements the org table.
type OrgModule struct {
	host     outline.Host
	nav      *outline.Navigator
	commands CommandRegistry
	caller   Caller
	events   EventBus
	logger   *logging.Logger

	mu            sync.Mutex
	registered    []string
	funcs         map[string]*lua.LFunction
	subscriptions []event.SubscriptionID
}

// NewOrgModule binds the module to a document host and navigator.
// commands and caller may be nil, in which case org.command raises an error.
func NewOrgModule(host outline.Host, nav *outline.Navigator, commands CommandRegistry, caller Caller, logger *logging.Logger, opts ...ModuleOption) *OrgModule {
	if nav == nil {
		nav = outline.NewNavigator()
	}
	m := &OrgModule{
		host:     host,
		nav:      nav,
		commands: commands,
		caller:   caller,
		logger:   logger.WithComponent("lua"),
		funcs:    make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *OrgModule) Name() string {
	return GlobalName
}

// Register installs the org table into L.
func (m *OrgModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "line", L.NewFunction(m.line))
	L.SetField(mod, "line_count", L.NewFunction(m.lineCount))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "indent", L.NewFunction(m.indent))
	L.SetField(mod, "parent", L.NewFunction(m.parent))
	L.SetField(mod, "children", L.NewFunction(m.children))
	L.SetField(mod, "ancestors", L.NewFunction(m.ancestors))
	L.SetField(mod, "checkbox", L.NewFunction(m.checkbox))
	L.SetField(mod, "summary", L.NewFunction(m.summary))
	L.SetField(mod, "recompute", L.NewFunction(m.recompute))
	L.SetField(mod, "navigate", L.NewFunction(m.navigate))
	L.SetField(mod, "expand", L.NewFunction(m.expand))
	L.SetField(mod, "command", L.NewFunction(m.command))
	L.SetField(mod, "on", L.NewFunction(m.on))
	L.SetField(mod, "off", L.NewFunction(m.off))

	L.SetGlobal(GlobalName, mod)
	return nil
}

// Commands returns the action names registered by scripts, in order.
func (m *OrgModule) Commands() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.registered))
	copy(out, m.registered)
	return out
}

// checkLine reads a 1-based line argument and returns the outline line.
func (m *OrgModule) checkLine(L *lua.LState, n int) outline.Line {
	i := L.CheckInt(n)
	if i < 1 || i > m.host.LineCount() {
		L.ArgError(n, fmt.Sprintf("line %d out of range [1, %d]", i, m.host.LineCount()))
	}
	return outline.LineAt(m.host, i-1)
}

// line(n) -> string
func (m *OrgModule) line(L *lua.LState) int {
	L.Push(lua.LString(m.checkLine(L, 1).Text))
	return 1
}

// line_count() -> number
func (m *OrgModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.host.LineCount()))
	return 1
}

// cursor() -> line, column
func (m *OrgModule) cursor(L *lua.LState) int {
	pos := m.host.Cursor()
	L.Push(lua.LNumber(pos.Line + 1))
	L.Push(lua.LNumber(pos.Column + 1))
	return 2
}

// indent(n) -> number
func (m *OrgModule) indent(L *lua.LState) int {
	L.Push(lua.LNumber(m.checkLine(L, 1).Indent()))
	return 1
}

// parent(n) -> number | nil
func (m *OrgModule) parent(L *lua.LState) int {
	p, ok := outline.Parent(m.host, m.checkLine(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.Index + 1))
	return 1
}

// children(n) -> {numbers}
func (m *OrgModule) children(L *lua.LState) int {
	kids := outline.Children(m.host, m.checkLine(L, 1))
	tbl := L.NewTable()
	for i, c := range kids {
		tbl.RawSetInt(i+1, lua.LNumber(c.Index+1))
	}
	L.Push(tbl)
	return 1
}

// ancestors(n) -> {numbers}, nearest parent first
func (m *OrgModule) ancestors(L *lua.LState) int {
	chain := outline.Ancestors(m.host, m.checkLine(L, 1))
	tbl := L.NewTable()
	for i, a := range chain {
		tbl.RawSetInt(i+1, lua.LNumber(a.Index+1))
	}
	L.Push(tbl)
	return 1
}

// checkbox(n) -> {checked=bool, column=number} | nil
func (m *OrgModule) checkbox(L *lua.LState) int {
	cb, ok := outline.FindCheckbox(m.checkLine(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	tbl := L.NewTable()
	L.SetField(tbl, "checked", lua.LBool(cb.Checked))
	L.SetField(tbl, "column", lua.LNumber(cb.Range.Start.Column+1))
	L.Push(tbl)
	return 1
}

// summary(n) -> checked, total | nil
func (m *OrgModule) summary(L *lua.LState) int {
	s, ok := outline.FindSummary(m.checkLine(L, 1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(s.Checked))
	L.Push(lua.LNumber(s.Total))
	return 2
}

// recompute(n) -> checked, total | nil
// Returns nil without writing when the line has no summary token or the
// document is not an outline.
func (m *OrgModule) recompute(L *lua.LState) int {
	line := m.checkLine(L, 1)
	out, ok, err := m.nav.UpdateSummary(m.host, line.Index)
	if err != nil {
		L.RaiseError("recompute line %d: %s", line.Index+1, err.Error())
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(out.Checked))
	L.Push(lua.LNumber(out.Total))
	return 2
}

// navigate() -> "toggle" | "summary" | "newline" | "none"
func (m *OrgModule) navigate(L *lua.LState) int {
	out, err := m.nav.Navigate(m.host)
	if err != nil {
		L.RaiseError("navigate: %s", err.Error())
		return 0
	}
	L.Push(lua.LString(out.Action.String()))
	return 1
}

// expand() -> bool
func (m *OrgModule) expand(L *lua.LState) int {
	L.Push(lua.LBool(m.nav.Expand(m.host)))
	return 1
}

// command(name, fn)
// Registers fn as a dispatcher action. fn receives the action's text
// argument. A string result becomes the status message, false means
// nothing happened.
func (m *OrgModule) command(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	if name == "" {
		L.ArgError(1, "command name must not be empty")
		return 0
	}
	if m.commands == nil || m.caller == nil {
		L.RaiseError("commands are not available")
		return 0
	}

	m.mu.Lock()
	_, mine := m.funcs[name]
	if !mine && m.commands.CanDispatch(name) {
		m.mu.Unlock()
		L.RaiseError("%s: %s", ErrCommandExists.Error(), name)
		return 0
	}
	if !mine {
		m.registered = append(m.registered, name)
	}
	m.funcs[name] = fn
	m.mu.Unlock()

	m.commands.RegisterHandlerFunc(name, m.commandHandler(name))
	m.logger.Debug("command registered", "name", name)
	return 0
}

func (m *OrgModule) commandHandler(name string) func(input.Action, *execctx.ExecutionContext) handler.Result {
	return func(action input.Action, _ *execctx.ExecutionContext) handler.Result {
		m.mu.Lock()
		fn := m.funcs[name]
		m.mu.Unlock()

		results, err := m.caller.CallFunction(fn, lua.LString(action.Args.Text))
		if err != nil {
			return handler.Error(fmt.Errorf("command %s: %w", name, err))
		}
		if len(results) == 0 {
			return handler.Success().WithRedraw()
		}
		switch v := results[0].(type) {
		case lua.LString:
			return handler.SuccessWithMessage(string(v)).WithRedraw()
		case lua.LBool:
			if !bool(v) {
				return handler.NoOp()
			}
		}
		return handler.Success().WithRedraw()
	}
}

// on(pattern, fn) -> id
// Subscribes fn to events matching pattern. fn receives a table with the
// event topic and payload; line and column fields are 1-based.
func (m *OrgModule) on(L *lua.LState) int {
	pattern := event.Topic(L.CheckString(1))
	fn := L.CheckFunction(2)

	if m.events == nil || m.caller == nil {
		L.RaiseError("events are not available")
		return 0
	}

	id, err := m.events.Subscribe(pattern, func(ev event.Event) error {
		_, err := m.caller.CallFunctionWith(fn, func(L *lua.LState) []lua.LValue {
			return []lua.LValue{eventTable(L, ev)}
		})
		return err
	})
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	m.mu.Lock()
	m.subscriptions = append(m.subscriptions, id)
	m.mu.Unlock()

	L.Push(lua.LNumber(id))
	return 1
}

// off(id) -> bool
func (m *OrgModule) off(L *lua.LState) int {
	id := event.SubscriptionID(L.CheckInt64(1))
	if m.events == nil {
		L.Push(lua.LFalse)
		return 1
	}

	m.mu.Lock()
	owned := false
	for i, sub := range m.subscriptions {
		if sub == id {
			m.subscriptions = append(m.subscriptions[:i], m.subscriptions[i+1:]...)
			owned = true
			break
		}
	}
	m.mu.Unlock()

	L.Push(lua.LBool(owned && m.events.Unsubscribe(id)))
	return 1
}

// Release drops every event subscription made by scripts.
func (m *OrgModule) Release() {
	m.mu.Lock()
	subs := m.subscriptions
	m.subscriptions = nil
	m.mu.Unlock()

	if m.events == nil {
		return
	}
	for _, id := range subs {
		m.events.Unsubscribe(id)
	}
}

func eventTable(L *lua.LState, ev event.Event) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "topic", lua.LString(ev.Topic))
	for k, v := range ev.Payload {
		switch k {
		case "line", "column":
			if n, ok := v.(int); ok {
				v = n + 1
			}
		}
		L.SetField(tbl, k, toLValue(v))
	}
	return tbl
}

func toLValue(v any) lua.LValue {
	switch v := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(v)
	case bool:
		return lua.LBool(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case fmt.Stringer:
		return lua.LString(v.String())
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
