package lua

import (
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestSandboxBlocksGlobals(t *testing.T) {
	state, _ := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		if v := state.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s should be nil, got %s", name, v.Type())
		}
		if !IsBlocked(name) {
			t.Errorf("IsBlocked(%q) = false", name)
		}
	}
	if IsBlocked("pairs") {
		t.Error("IsBlocked(pairs) = true")
	}
}

func TestSandboxLibraries(t *testing.T) {
	state, _ := NewState()
	defer state.Close()

	tests := []struct {
		name string
		open bool
	}{
		{"string", true},
		{"table", true},
		{"math", true},
		{"io", false},
		{"os", false},
		{"debug", false},
		{"package", false},
	}
	for _, tt := range tests {
		got := state.GetGlobal(tt.name) != glua.LNil
		if got != tt.open {
			t.Errorf("%s open = %v, want %v", tt.name, got, tt.open)
		}
	}
}

func TestSandboxPrint(t *testing.T) {
	var out []string
	state, _ := NewState(WithPrint(func(msg string) { out = append(out, msg) }))
	defer state.Close()

	if err := state.DoString(`print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(out) != 1 || out[0] != "a\t1\ttrue" {
		t.Errorf("print output = %q", out)
	}
}

func TestSandboxPrintDiscarded(t *testing.T) {
	state, _ := NewState()
	defer state.Close()

	if err := state.DoString(`print("ignored")`); err != nil {
		t.Errorf("DoString() error = %v", err)
	}
}
