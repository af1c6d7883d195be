package outline

import (
	"fmt"

	"github.com/dshills/orgmode/internal/logging"
)

// DefaultLanguageID is the language id of outline documents.
const DefaultLanguageID = "orgmode"

// Host is the editor that owns the document buffer.
type Host interface {
	Document

	// LanguageID returns the declared content type of the active document.
	LanguageID() string

	// Cursor returns the current cursor position.
	Cursor() Position

	// Replace substitutes the text in r.
	Replace(r Range, text string) error

	// Insert inserts text at p. A "\n" in text is written using the
	// document's own line ending.
	Insert(p Position, text string) error
}

// Action identifies which branch of Navigate ran.
type Action uint8

const (
	// ActionNone means the document is not an outline; nothing was done.
	ActionNone Action = iota
	// ActionToggle means a checkbox marker was toggled.
	ActionToggle
	// ActionSummary means a summary token was recomputed.
	ActionSummary
	// ActionNewline means a line break was inserted at the cursor.
	ActionNewline
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionToggle:
		return "toggle"
	case ActionSummary:
		return "summary"
	case ActionNewline:
		return "newline"
	default:
		return "unknown"
	}
}

// Outcome describes the single edit issued by Navigate.
type Outcome struct {
	Action Action

	// Range is the replaced range, or the empty range at the insertion point.
	Range Range

	// Text is the text written.
	Text string

	// Checked and Total are set for ActionSummary.
	Checked int
	Total   int
}

// Navigator performs the navigate and expand actions against a Host.
type Navigator struct {
	languageID    string
	checkedMarker string
	logger        *logging.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLanguageID sets the language id the navigator acts on.
func WithLanguageID(id string) Option {
	return func(n *Navigator) {
		if id != "" {
			n.languageID = id
		}
	}
}

// WithCheckedMarker sets the marker written when a checkbox is checked.
// Only "x" and "X" are accepted.
func WithCheckedMarker(marker string) Option {
	return func(n *Navigator) {
		if marker == "x" || marker == "X" {
			n.checkedMarker = marker
		}
	}
}

// WithLogger sets the navigator's logger.
func WithLogger(l *logging.Logger) Option {
	return func(n *Navigator) {
		n.logger = l
	}
}

// NewNavigator creates a Navigator.
func NewNavigator(opts ...Option) *Navigator {
	n := &Navigator{
		languageID:    DefaultLanguageID,
		checkedMarker: MarkerChecked,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// LanguageID returns the language id the navigator acts on.
func (n *Navigator) LanguageID() string {
	return n.languageID
}

// Applies reports whether host holds an outline document.
func (n *Navigator) Applies(host Host) bool {
	return host != nil && host.LanguageID() == n.languageID
}

// Navigate inspects the cursor line and issues exactly one edit:
//
//  1. cursor on a checkbox marker: toggle it
//  2. cursor inside a summary token: recompute it from the direct children
//  3. otherwise: insert a line break at the cursor
//
// Documents of another language are left untouched and ActionNone is
// returned. Errors from the host's edit are returned as is, wrapped.
func (n *Navigator) Navigate(host Host) (Outcome, error) {
	if !n.Applies(host) {
		return Outcome{Action: ActionNone}, nil
	}

	pos := host.Cursor()
	line := LineAt(host, pos.Line)

	if cb, ok := CheckboxAt(line, pos); ok {
		text := ToggleMarker(cb.Marker, n.checkedMarker)
		if err := host.Replace(cb.Range, text); err != nil {
			return Outcome{}, fmt.Errorf("toggle checkbox at %s: %w", cb.Range.Start, err)
		}
		n.logger.Debug("checkbox toggled", "line", line.Index, "marker", text)
		return Outcome{Action: ActionToggle, Range: cb.Range, Text: text}, nil
	}

	if _, ok := SummaryAt(line, pos); ok {
		return n.updateSummary(host, line)
	}

	if err := host.Insert(pos, "\n"); err != nil {
		return Outcome{}, fmt.Errorf("insert newline at %s: %w", pos, err)
	}
	n.logger.Debug("newline inserted", "line", pos.Line, "column", pos.Column)
	return Outcome{Action: ActionNewline, Range: Range{Start: pos, End: pos}, Text: "\n"}, nil
}

// UpdateSummary rewrites the summary token on line from its direct
// children. ok is false when host is not an outline document or the line
// has no summary token; nothing is written then.
func (n *Navigator) UpdateSummary(host Host, line int) (out Outcome, ok bool, err error) {
	if !n.Applies(host) || line < 0 || line >= host.LineCount() {
		return Outcome{Action: ActionNone}, false, nil
	}
	l := LineAt(host, line)
	if _, found := FindSummary(l); !found {
		return Outcome{Action: ActionNone}, false, nil
	}
	out, err = n.updateSummary(host, l)
	if err != nil {
		return Outcome{}, false, err
	}
	return out, true, nil
}

func (n *Navigator) updateSummary(host Host, line Line) (Outcome, error) {
	s, _ := FindSummary(line)
	checked, total := Recompute(host, line)
	text := FormatSummary(checked, total)
	if err := host.Replace(s.Range, text); err != nil {
		return Outcome{}, fmt.Errorf("update summary at %s: %w", s.Range.Start, err)
	}
	n.logger.Debug("summary updated", "line", line.Index, "checked", checked, "total", total)
	return Outcome{
		Action:  ActionSummary,
		Range:   s.Range,
		Text:    text,
		Checked: checked,
		Total:   total,
	}, nil
}

// Expand is reserved for structural folding. It changes nothing and only
// reports whether host holds an outline document.
func (n *Navigator) Expand(host Host) bool {
	if !n.Applies(host) {
		return false
	}
	n.logger.Info("expand requested", "line", host.Cursor().Line)
	return true
}
