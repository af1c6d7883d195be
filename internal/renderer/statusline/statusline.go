// Package statusline provides the status line UI component.
package statusline

import (
	"fmt"

	"github.com/dshills/orgmode/internal/renderer/backend"
)

// StatusLine renders the bottom status line: file name and flags on the
// left, the last message after them and the cursor position on the right.
type StatusLine struct {
	// Display state
	filename string // Current filename (empty for scratch)
	modified bool   // Buffer has unsaved changes
	readOnly bool
	language string
	line     int // Current line (0-indexed, shown 1-indexed)
	col      int // Current column (0-indexed, shown 1-indexed)

	// Message display
	message     string
	messageType MessageType
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// Styles used by the status line.
var (
	barStyle     = backend.DefaultStyle().WithAttributes(backend.AttrReverse)
	warningStyle = barStyle.WithForeground(backend.ColorYellow)
	errorStyle   = barStyle.WithForeground(backend.ColorRed).WithAttributes(backend.AttrReverse | backend.AttrBold)
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetFilename sets the displayed file name. Empty means a scratch document.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified sets the unsaved changes flag.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetReadOnly sets the read-only flag.
func (s *StatusLine) SetReadOnly(readOnly bool) {
	s.readOnly = readOnly
}

// SetLanguage sets the document language shown next to the position.
func (s *StatusLine) SetLanguage(id string) {
	s.language = id
}

// SetPosition sets the 0-indexed cursor position.
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetMessage sets the status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Render draws the status line on row.
func (s *StatusLine) Render(b backend.Backend, row, width int) {
	for x := 0; x < width; x++ {
		b.SetCell(x, row, ' ', barStyle)
	}

	name := s.filename
	if name == "" {
		name = "[scratch]"
	}
	if s.modified {
		name += " [+]"
	}
	if s.readOnly {
		name += " [RO]"
	}

	posInfo := s.formatPosition()
	posStart := width - backend.TextWidth(posInfo)

	// Leave room for position info
	limit := posStart - 1
	if limit < 1 {
		limit = width
	}
	col := backend.DrawText(b, 0, row, " "+name, barStyle, limit)
	if s.message != "" && col+2 < limit {
		col += 2
		col += backend.DrawText(b, col, row, s.message, s.messageStyle(), limit-col)
	}

	if posStart > col {
		backend.DrawText(b, posStart, row, posInfo, barStyle, 0)
	}
}

func (s *StatusLine) messageStyle() backend.Style {
	switch s.messageType {
	case MessageError:
		return errorStyle
	case MessageWarning:
		return warningStyle
	default:
		return barStyle
	}
}

func (s *StatusLine) formatPosition() string {
	pos := fmt.Sprintf("Ln %d, Col %d ", s.line+1, s.col+1)
	if s.language != "" {
		return s.language + "  " + pos
	}
	return pos
}
