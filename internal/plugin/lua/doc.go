// Package lua hosts the sandboxed Lua runtime that runs user scripts.
//
// A State opens only the base, table, string and math libraries. The
// file loading builtins are removed, and every call runs under a context
// deadline so a runaway script cannot hang the editor.
//
// gopher-lua's LState is not goroutine-safe. State serialises access with
// a mutex, which also makes it safe to call back into Lua from dispatcher
// handlers.
package lua
