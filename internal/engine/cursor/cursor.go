package cursor

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/orgmode/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// LineReader is the read access a cursor needs to move.
// *buffer.Buffer and *buffer.Snapshot both satisfy it.
type LineReader interface {
	LineCount() int
	LineText(line int) string
}

// Cursor represents an insertion point in the buffer.
// Cursor is an immutable value type.
type Cursor struct {
	point Point
	// goal is the rune column kept across Up/Down; -1 when unset.
	goal int
}

// New creates a cursor at p. Negative coordinates clamp to zero.
func New(p Point) Cursor {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Column < 0 {
		p.Column = 0
	}
	return Cursor{point: p, goal: -1}
}

// Point returns the cursor position.
func (c Cursor) Point() Point {
	return c.point
}

// Line returns the cursor's line.
func (c Cursor) Line() int {
	return c.point.Line
}

// Column returns the cursor's byte column.
func (c Cursor) Column() int {
	return c.point.Column
}

// MoveTo returns a new cursor at p.
func (c Cursor) MoveTo(p Point) Cursor {
	return New(p)
}

// Clamp returns a cursor moved onto the nearest valid position in r.
func (c Cursor) Clamp(r LineReader) Cursor {
	n := r.LineCount()
	if n == 0 {
		return Cursor{goal: c.goal}
	}
	p := c.point
	if p.Line >= n {
		p.Line = n - 1
		p.Column = len(r.LineText(p.Line))
	}
	p.Column = snapColumn(r.LineText(p.Line), p.Column)
	return Cursor{point: p, goal: c.goal}
}

// Left moves one rune left, wrapping to the end of the previous line.
func (c Cursor) Left(r LineReader) Cursor {
	c = c.Clamp(r)
	p := c.point
	if p.Column > 0 {
		_, size := utf8.DecodeLastRuneInString(r.LineText(p.Line)[:p.Column])
		p.Column -= size
		return New(p)
	}
	if p.Line > 0 {
		p.Line--
		p.Column = len(r.LineText(p.Line))
	}
	return New(p)
}

// Right moves one rune right, wrapping to the start of the next line.
func (c Cursor) Right(r LineReader) Cursor {
	c = c.Clamp(r)
	p := c.point
	text := r.LineText(p.Line)
	if p.Column < len(text) {
		_, size := utf8.DecodeRuneInString(text[p.Column:])
		p.Column += size
		return New(p)
	}
	if p.Line+1 < r.LineCount() {
		p.Line++
		p.Column = 0
	}
	return New(p)
}

// Up moves to the previous line, keeping the goal column where possible.
func (c Cursor) Up(r LineReader) Cursor {
	c = c.Clamp(r)
	if c.point.Line == 0 {
		return New(Point{})
	}
	return c.vertical(r, c.point.Line-1)
}

// Down moves to the next line, keeping the goal column where possible.
func (c Cursor) Down(r LineReader) Cursor {
	c = c.Clamp(r)
	if c.point.Line+1 >= r.LineCount() {
		return New(Point{Line: c.point.Line, Column: len(r.LineText(c.point.Line))})
	}
	return c.vertical(r, c.point.Line+1)
}

func (c Cursor) vertical(r LineReader, line int) Cursor {
	goal := c.goal
	if goal < 0 {
		goal = utf8.RuneCountInString(r.LineText(c.point.Line)[:c.point.Column])
	}
	return Cursor{
		point: Point{Line: line, Column: runeColumn(r.LineText(line), goal)},
		goal:  goal,
	}
}

// LineStart moves to column 0 of the current line.
func (c Cursor) LineStart(r LineReader) Cursor {
	c = c.Clamp(r)
	return New(Point{Line: c.point.Line})
}

// LineEnd moves past the last byte of the current line.
func (c Cursor) LineEnd(r LineReader) Cursor {
	c = c.Clamp(r)
	return New(Point{Line: c.point.Line, Column: len(r.LineText(c.point.Line))})
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor%s", c.point)
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c.point == other.point
}

// runeColumn returns the byte offset of the n-th rune in text, or len(text).
func runeColumn(text string, n int) int {
	col := 0
	for i := 0; i < n && col < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[col:])
		col += size
	}
	return col
}

// snapColumn clamps col into text and moves it back onto a rune boundary.
func snapColumn(text string, col int) int {
	if col > len(text) {
		return len(text)
	}
	for col > 0 && col < len(text) && !utf8.RuneStart(text[col]) {
		col--
	}
	return col
}
