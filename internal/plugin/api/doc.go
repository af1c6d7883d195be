// Package api implements the Go side of the Lua API exposed to scripts.
//
// Scripts see a single global table, org, whose functions read the open
// outline document and issue the same edits as the built-in actions:
//
//	org.line(n)          text of line n
//	org.line_count()     number of lines
//	org.cursor()         line, column of the cursor
//	org.indent(n)        indentation of line n
//	org.parent(n)        parent line number, or nil
//	org.children(n)      list of direct child line numbers
//	org.ancestors(n)     list of enclosing line numbers, nearest first
//	org.checkbox(n)      {checked=bool, column=c}, or nil
//	org.summary(n)       checked, total as written, or nil
//	org.recompute(n)     rewrite the summary on line n, returns checked, total
//	org.navigate()       run the navigate action, returns its kind
//	org.expand()         run the expand action
//	org.command(name, fn) register fn as dispatcher action name
//	org.on(pattern, fn)  call fn(ev) for events matching pattern, returns an id
//	org.off(id)          remove a subscription made with org.on
//
// Line numbers and columns are 1-based on the Lua side. Columns count
// characters. Like navigate, recompute does nothing outside outline
// documents.
//
// Event handlers run on the publishing goroutine while the Lua state is
// locked. Events are published by dispatched actions, never from inside a
// Lua call, so a handler cannot re-enter the state.
package api
