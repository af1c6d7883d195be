// Package app wires the outline editor together and runs its event loop.
//
// An Application owns one document. Keys from the backend are named with
// backend.KeyName, looked up in the keymap and dispatched; resize events
// redraw; file watcher events arrive as backend interrupts and reload the
// document when it has no local changes.
//
// Batch runs a single action without a terminal, for the command line.
package app
