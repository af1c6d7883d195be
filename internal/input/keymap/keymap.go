package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// ErrEmptyKey is returned when a binding has no key.
var ErrEmptyKey = errors.New("keymap: empty key")

// Keymap holds key bindings indexed by key name.
type Keymap struct {
	mu sync.RWMutex

	// Name is the keymap identifier.
	Name string

	bindings map[string]Binding
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		bindings: make(map[string]Binding),
	}
}

// Add binds keys to action, replacing any previous binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	return k.AddBinding(NewBinding(keys, action))
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.mu.Lock()
	defer k.mu.Unlock()
	b.Keys = NormalizeKey(b.Keys)
	k.bindings[b.Keys] = b
	return k
}

// Remove deletes the binding for keys.
func (k *Keymap) Remove(keys string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.bindings, NormalizeKey(keys))
}

// Lookup returns the binding for keys.
func (k *Keymap) Lookup(keys string) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[NormalizeKey(keys)]
	return b, ok
}

// Bindings returns all bindings sorted by key.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Merge overlays overrides (key → action) onto the keymap.
// An empty action unbinds the key.
func (k *Keymap) Merge(overrides map[string]string) error {
	for keys, action := range overrides {
		if NormalizeKey(keys) == "" {
			return fmt.Errorf("binding for action %q: %w", action, ErrEmptyKey)
		}
		if action == "" {
			k.Remove(keys)
			continue
		}
		k.Add(keys, action)
	}
	return nil
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for _, b := range k.Bindings() {
		if b.Keys == "" {
			return ErrEmptyKey
		}
		if b.Action == "" {
			return fmt.Errorf("binding %s: empty action", b.Keys)
		}
	}
	return nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := NewKeymap(k.Name)
	for _, b := range k.Bindings() {
		if b.Args != nil {
			args := make(map[string]any, len(b.Args))
			for key, v := range b.Args {
				args[key] = v
			}
			b.Args = args
		}
		clone.AddBinding(b)
	}
	return clone
}

// NormalizeKey converts a key spelling to the backend's naming.
// Single characters are kept as typed so "x" and "X" stay distinct.
func NormalizeKey(keys string) string {
	keys = strings.TrimSpace(keys)
	if utf8.RuneCountInString(keys) <= 1 {
		return keys
	}

	keys = strings.TrimSuffix(strings.TrimPrefix(keys, "<"), ">")
	if utf8.RuneCountInString(keys) == 1 {
		return keys
	}

	lower := strings.ToLower(keys)
	for _, p := range [][2]string{{"c-", "ctrl+"}, {"ctrl-", "ctrl+"}, {"m-", "alt+"}, {"alt-", "alt+"}, {"s-", "shift+"}} {
		if strings.HasPrefix(lower, p[0]) {
			lower = p[1] + lower[len(p[0]):]
			break
		}
	}

	switch lower {
	case "return", "cr":
		return "enter"
	case "esc":
		return "escape"
	case "bs":
		return "backspace"
	}
	return lower
}
