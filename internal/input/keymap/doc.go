// Package keymap maps key names to action names.
//
// Keys are written the way the terminal backend reports them: "enter",
// "tab", "up", "ctrl+s" or a single character such as "x". Common
// spellings like "C-s", "<C-s>" and "Ctrl+S" are normalised on the way in.
//
// A Keymap starts from Default() and is overlaid with user bindings from
// the [keymap] section of the configuration file. Binding a key to the
// empty action removes it.
package keymap
