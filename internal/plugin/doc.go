// Package plugin loads user Lua scripts and binds them to the open
// outline document.
//
// A Manager owns one sandboxed Lua state shared by every script. Scripts
// are listed in the [plugins] section of the configuration and run once at
// startup; they extend the editor by registering commands through the org
// table (see package api).
package plugin
