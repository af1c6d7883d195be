package engine

import (
	"github.com/dshills/orgmode/internal/outline"
)

// Engine is the text-editing host the outline navigator works against.
// Outline positions count characters; engine points count bytes. The
// conversion happens here, against the current line text.
var _ outline.Host = (*Engine)(nil)

// Cursor returns the cursor as an outline position.
func (e *Engine) Cursor() outline.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p := e.cur.Point()
	return outline.Position{
		Line:   p.Line,
		Column: outline.CharColumn(e.buf.LineText(p.Line), p.Column),
	}
}

// MoveTo moves the cursor to the outline position p, clamped to the
// document.
func (e *Engine) MoveTo(p outline.Position) {
	e.SetCursor(e.toPoint(p))
}

// Replace substitutes the text in r.
func (e *Engine) Replace(r outline.Range, text string) error {
	_, err := e.ReplaceRange(PointRange{Start: e.toPoint(r.Start), End: e.toPoint(r.End)}, text)
	return err
}

// Insert inserts text at p. A "\n" in text is stored as a line break and
// written back with the document's line ending.
func (e *Engine) Insert(p outline.Position, text string) error {
	_, err := e.InsertAt(e.toPoint(p), text)
	return err
}

func (e *Engine) toPoint(p outline.Position) Point {
	return Point{Line: p.Line, Column: outline.ByteColumn(e.LineText(p.Line), p.Column)}
}
