package engine

import (
	"github.com/dshills/orgmode/internal/engine/buffer"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
	DefaultLanguageID     = "plaintext"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding forces the line ending style. Without it, files opened
// from disk keep the style they were written with.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
		e.lineEndingSet = true
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithPath sets the file backing the engine.
func WithPath(path string) Option {
	return func(e *Engine) {
		e.path = path
	}
}

// WithLanguageID sets the declared content type of the document.
func WithLanguageID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.languageID = id
		}
	}
}
