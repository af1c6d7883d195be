package engine

import (
	"io"
	"sync"

	"github.com/dshills/orgmode/internal/engine/buffer"
	"github.com/dshills/orgmode/internal/engine/cursor"
	"github.com/dshills/orgmode/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a line/column position.
	Point = buffer.Point

	// PointRange represents a range of points.
	PointRange = buffer.PointRange

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Cursor is the engine's insertion point.
	Cursor = cursor.Cursor
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the main facade for a single open document.
// It combines the buffer, the cursor, undo history and the document's
// file path and language id into a thread-safe API.
type Engine struct {
	mu sync.RWMutex

	buf     *buffer.Buffer
	cur     cursor.Cursor
	history *history.History

	path       string
	languageID string

	tabWidth       int
	lineEnding     buffer.LineEnding
	lineEndingSet  bool
	maxUndoEntries int
	readOnly       bool

	initContent string
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		languageID:     DefaultLanguageID,
		cur:            cursor.New(Point{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	opts := []buffer.Option{buffer.WithTabWidth(e.tabWidth)}
	if e.lineEndingSet {
		opts = append(opts, buffer.WithLineEnding(e.lineEnding))
	}
	return opts
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	var err error
	e.buf, err = buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without line ending).
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// Snapshot returns a read-only copy of the current content.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// Modified returns true if the document changed since it was last saved
// or loaded.
func (e *Engine) Modified() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Modified()
}

// LineEnding returns the document's line ending style.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// ReadOnly reports whether writes are rejected.
func (e *Engine) ReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// Path returns the backing file path, or "" for a scratch document.
func (e *Engine) Path() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.path
}

// LanguageID returns the declared content type of the document.
func (e *Engine) LanguageID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.languageID
}

// SetLanguageID changes the declared content type.
func (e *Engine) SetLanguageID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.languageID = id
}

// ============================================================================
// Cursor
// ============================================================================

// CursorPoint returns the cursor position.
func (e *Engine) CursorPoint() Point {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cur.Point()
}

// SetCursor moves the cursor to p, clamped to the document.
func (e *Engine) SetCursor(p Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cur = cursor.New(p).Clamp(e.buf)
}

// MoveCursor applies a cursor motion such as Cursor.Down.
//
//	e.MoveCursor(cursor.Cursor.Down)
func (e *Engine) MoveCursor(motion func(cursor.Cursor, cursor.LineReader) cursor.Cursor) Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cur = motion(e.cur, e.buf)
	return e.cur.Point()
}

// ============================================================================
// Write Operations
// ============================================================================

// ReplaceRange replaces the text in r and records the edit for undo.
// The cursor stays where it was, clamped to the new content.
func (e *Engine) ReplaceRange(r PointRange, text string) (Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return Point{}, ErrReadOnly
	}
	return e.applyLocked(r, text, false)
}

// InsertAt inserts text at p and moves the cursor after it.
func (e *Engine) InsertAt(p Point, text string) (Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return Point{}, ErrReadOnly
	}
	return e.applyLocked(PointRange{Start: p, End: p}, text, true)
}

// applyLocked applies an edit, updates the cursor and pushes the edit onto
// the undo stack.
func (e *Engine) applyLocked(r PointRange, text string, cursorToEnd bool) (Point, error) {
	before := e.cur.Point()
	res, err := e.buf.ApplyEdit(buffer.NewEdit(r, text))
	if err != nil {
		return Point{}, err
	}

	end := res.NewRange.End
	if cursorToEnd {
		e.cur = cursor.New(end)
	} else {
		e.cur = e.cur.Clamp(e.buf)
	}

	e.history.Push(history.FromEditResult(res, text, before, e.cur.Point()))
	return end, nil
}

// Undo reverts the last edit and restores the cursor.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	op, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	e.cur = cursor.New(op.CursorBefore).Clamp(e.buf)
	return nil
}

// Redo re-applies the last undone edit.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	op, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	e.cur = cursor.New(op.CursorAfter).Clamp(e.buf)
	return nil
}

// CanUndo returns true if there is an edit to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there is an edit to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}
