package outline

import (
	"fmt"
	"unicode/utf8"
)

// Position is a line and column in a document.
// Both are 0-indexed; Column is a character (rune) offset within the
// line text.
type Position struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Position) Compare(other Position) int {
	if p.Line < other.Line {
		return -1
	}
	if p.Line > other.Line {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Range is a half-open span [Start, End) of a document.
// Every range produced by this package lies on a single line.
type Range struct {
	Start Position
	End   Position
}

// LineRange returns the range [start, end) on the given line.
func LineRange(line, start, end int) Range {
	return Range{
		Start: Position{Line: line, Column: start},
		End:   Position{Line: line, Column: end},
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start, r.End)
}

// Contains returns true if p lies within the range.
func (r Range) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// CharColumn converts a byte offset in text to a character offset.
// Offsets past the end of text map to the character count.
func CharColumn(text string, byteCol int) int {
	if byteCol <= 0 {
		return 0
	}
	if byteCol > len(text) {
		byteCol = len(text)
	}
	return utf8.RuneCountInString(text[:byteCol])
}

// ByteColumn converts a character offset in text to a byte offset.
// Offsets past the last character map to len(text).
func ByteColumn(text string, charCol int) int {
	col := 0
	for i := 0; i < charCol && col < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[col:])
		col += size
	}
	return col
}
