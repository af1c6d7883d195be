// Package input defines the actions user input is turned into.
//
// A key press is looked up in a keymap (see package keymap) and becomes an
// Action naming a dispatcher command such as "orgmode.navigate" or
// "cursor.moveDown". Actions can also originate from plugins or from the
// command line, recorded in Action.Source.
package input
