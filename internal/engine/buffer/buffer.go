package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrPointOutOfRange = errors.New("point out of range")
	ErrRangeInvalid    = errors.New("invalid range")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "crlf"
	case LineEndingCR:
		return "cr"
	default:
		return "lf"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds a document as a slice of lines.
// It always contains at least one (possibly empty) line.
// All methods are thread-safe.
type Buffer struct {
	mu            sync.RWMutex
	lines         []string
	revisionID    RevisionID
	savedRevision RevisionID
	lineEnding    LineEnding
	tabWidth      int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.savedRevision = b.revisionID
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
// The line ending style is detected from the content unless an option
// sets one explicitly.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := string(data)
	opts = append([]Option{WithDetectedLineEnding(text)}, opts...)
	return NewBufferFromString(text, opts...), nil
}

// splitLines splits text on any line ending. "a\n" is two lines, "a" and "".
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// Read Operations

// Text returns the full buffer content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, b.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a specific line (without line ending).
// Returns "" for lines outside the buffer.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// LineLen returns the length of a specific line in bytes.
func (b *Buffer) LineLen(line int) int {
	return len(b.LineText(line))
}

// TextRange returns the text in r. Lines inside the range are joined
// with "\n".
func (b *Buffer) TextRange(r PointRange) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if err := b.checkRange(r); err != nil {
		return "", err
	}
	return b.textRange(r), nil
}

func (b *Buffer) textRange(r PointRange) string {
	if r.IsSingleLine() {
		return b.lines[r.Start.Line][r.Start.Column:r.End.Column]
	}

	var sb strings.Builder
	sb.WriteString(b.lines[r.Start.Line][r.Start.Column:])
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[l])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.lines[r.End.Line][:r.End.Column])
	return sb.String()
}

// ClampPoint returns the nearest valid point to p.
func (b *Buffer) ClampPoint(p Point) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line < 0 {
		return Point{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Point{Line: last, Column: len(b.lines[last])}
	}
	if p.Column < 0 {
		p.Column = 0
	}
	if n := len(b.lines[p.Line]); p.Column > n {
		p.Column = n
	}
	return p
}

// Write Operations

// Insert inserts text at the given point.
// Returns the point just after the inserted text.
func (b *Buffer) Insert(p Point, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkPoint(p); err != nil {
		return Point{}, err
	}
	return b.replace(PointRange{Start: p, End: p}, text), nil
}

// Delete removes the text in r.
func (b *Buffer) Delete(r PointRange) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(r); err != nil {
		return err
	}
	b.replace(r, "")
	return nil
}

// Replace replaces the text in r with text.
// Returns the point just after the replacement text.
func (b *Buffer) Replace(r PointRange, text string) (Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(r); err != nil {
		return Point{}, err
	}
	return b.replace(r, text), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.checkRange(edit.Range); err != nil {
		return EditResult{}, err
	}

	oldText := b.textRange(edit.Range)
	end := b.replace(edit.Range, edit.NewText)

	return EditResult{
		OldRange: edit.Range,
		NewRange: PointRange{Start: edit.Range.Start, End: end},
		OldText:  oldText,
	}, nil
}

// SetText replaces the whole buffer content.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = splitLines(s)
	b.revisionID = NewRevisionID()
}

// replace performs the edit; the caller holds the write lock and has
// validated r.
func (b *Buffer) replace(r PointRange, text string) Point {
	prefix := b.lines[r.Start.Line][:r.Start.Column]
	suffix := b.lines[r.End.Line][r.End.Column:]

	inserted := splitLines(text)
	last := len(inserted) - 1

	end := Point{Line: r.Start.Line + last, Column: len(inserted[last])}
	if last == 0 {
		end.Column += len(prefix)
	}

	inserted[0] = prefix + inserted[0]
	inserted[last] += suffix

	lines := make([]string, 0, len(b.lines)-(r.End.Line-r.Start.Line)+last)
	lines = append(lines, b.lines[:r.Start.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[r.End.Line+1:]...)
	b.lines = lines

	b.revisionID = NewRevisionID()
	return end
}

func (b *Buffer) checkPoint(p Point) error {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return ErrPointOutOfRange
	}
	if p.Column < 0 || p.Column > len(b.lines[p.Line]) {
		return ErrPointOutOfRange
	}
	return nil
}

func (b *Buffer) checkRange(r PointRange) error {
	if !r.IsValid() {
		return ErrRangeInvalid
	}
	if b.checkPoint(r.Start) != nil || b.checkPoint(r.End) != nil {
		return ErrRangeInvalid
	}
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Modified returns true if the buffer changed since the last MarkSaved.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID != b.savedRevision
}

// MarkSaved records the current revision as saved.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.savedRevision = b.revisionID
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lines := make([]string, len(b.lines))
	copy(lines, b.lines)

	return &Snapshot{
		lines:      lines,
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
	}
}
