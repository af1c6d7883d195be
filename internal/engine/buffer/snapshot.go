package buffer

import "strings"

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a specific line (without line ending).
// Returns "" for lines outside the snapshot.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// RevisionID returns the revision this snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}
