// Package cursor provides the editing cursor for a line-based buffer.
//
// A Cursor is an immutable value holding a buffer.Point plus the column the
// user was aiming for during vertical motion. Every motion takes a
// LineReader so the cursor never needs to hold on to the buffer itself:
//
//	c := cursor.New(buffer.Point{Line: 2, Column: 4})
//	c = c.Down(buf)     // same visual column on line 3, or end of line
//	c = c.LineEnd(buf)  // last byte offset of the line
//
// Columns are byte offsets and always fall on a rune boundary. Horizontal
// motion steps one rune at a time and wraps across line boundaries.
//
// Cursor values are safe for concurrent use.
package cursor
