package outline

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Document is a read-only view of an outline's lines.
// Implementations must return line text without the line terminator.
type Document interface {
	// LineCount returns the number of lines in the document.
	LineCount() int

	// LineText returns the text of line i, 0 <= i < LineCount().
	LineText(i int) string
}

// Line is a single line of a document.
type Line struct {
	Index int
	Text  string
}

// LineAt returns line i of doc.
// An index outside the document is a caller bug and panics.
func LineAt(doc Document, i int) Line {
	if i < 0 || i >= doc.LineCount() {
		panic(fmt.Sprintf("outline: line %d out of range [0, %d)", i, doc.LineCount()))
	}
	return Line{Index: i, Text: doc.LineText(i)}
}

// Indent returns the indentation level of the line.
func (l Line) Indent() int {
	return IndentOf(l.Text)
}

// IndentOf returns the number of whitespace characters before the first
// non-whitespace character of text. A blank line has indentation 0.
func IndentOf(text string) int {
	for i, r := range text {
		if !unicode.IsSpace(r) {
			return utf8.RuneCountInString(text[:i])
		}
	}
	return 0
}

// Lines is a Document backed by a string slice.
type Lines []string

// LineCount implements Document.
func (ls Lines) LineCount() int {
	return len(ls)
}

// LineText implements Document.
func (ls Lines) LineText(i int) string {
	return ls[i]
}
