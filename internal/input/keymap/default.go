package keymap

// Default returns the built-in bindings.
func Default() *Keymap {
	km := NewKeymap("default")
	for _, b := range []Binding{
		{Keys: "enter", Action: "orgmode.navigate", Description: "Toggle checkbox, update summary or break line"},
		{Keys: "tab", Action: "orgmode.expand", Description: "Expand outline item"},

		{Keys: "up", Action: "cursor.moveUp", Description: "Move up"},
		{Keys: "down", Action: "cursor.moveDown", Description: "Move down"},
		{Keys: "left", Action: "cursor.moveLeft", Description: "Move left"},
		{Keys: "right", Action: "cursor.moveRight", Description: "Move right"},
		{Keys: "home", Action: "cursor.moveLineStart", Description: "Move to line start"},
		{Keys: "end", Action: "cursor.moveLineEnd", Description: "Move to line end"},
		{Keys: "pgup", Action: "cursor.pageUp", Description: "Move up one page"},
		{Keys: "pgdn", Action: "cursor.pageDown", Description: "Move down one page"},

		{Keys: "ctrl+z", Action: "edit.undo", Description: "Undo"},
		{Keys: "ctrl+y", Action: "edit.redo", Description: "Redo"},

		{Keys: "ctrl+s", Action: "file.save", Description: "Save file"},
		{Keys: "ctrl+r", Action: "file.reload", Description: "Reload file from disk"},
		{Keys: "ctrl+q", Action: "app.quit", Description: "Quit"},
	} {
		km.AddBinding(b)
	}
	return km
}
