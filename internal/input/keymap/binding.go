package keymap

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Keys is the normalised key name that triggers this binding.
	Keys string

	// Action is the command to execute.
	// Examples: "orgmode.navigate", "cursor.moveDown", "file.save"
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any

	// Description provides documentation for the binding.
	Description string
}

// NewBinding creates a new binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{
		Keys:   NormalizeKey(keys),
		Action: action,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}
