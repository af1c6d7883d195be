package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// blockedGlobals are base library functions that reach the file system or
// compile arbitrary chunks.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"module",
	"require",
	"collectgarbage",
}

// PrintFunc receives the output of the Lua print builtin.
type PrintFunc func(msg string)

// Sandbox restricts what scripts in a state can reach.
type Sandbox struct {
	L     *lua.LState
	print PrintFunc
}

// NewSandbox creates a sandbox for L. A nil print discards output.
func NewSandbox(L *lua.LState, print PrintFunc) *Sandbox {
	return &Sandbox{L: L, print: print}
}

// Install removes the blocked globals and redirects print.
func (s *Sandbox) Install() {
	for _, name := range blockedGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.luaPrint))
}

// IsBlocked reports whether name is removed from the global table.
func IsBlocked(name string) bool {
	for _, b := range blockedGlobals {
		if b == name {
			return true
		}
	}
	return false
}

func (s *Sandbox) luaPrint(L *lua.LState) int {
	if s.print == nil {
		return 0
	}
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.print(strings.Join(parts, "\t"))
	return 0
}
