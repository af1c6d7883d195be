package outline

import (
	"regexp"
	"strconv"
)

const (
	// MarkerUnchecked is the marker of an unchecked checkbox.
	MarkerUnchecked = " "

	// MarkerChecked is the marker written when a checkbox is checked.
	MarkerChecked = "X"
)

var (
	// "[x]", "[X]" or "[ ]"; group 1 is the marker.
	checkboxPattern = regexp.MustCompile(`\[([xX ])\]`)

	// "[n/m]" with optional digit runs; groups 1 and 2 are the counts.
	summaryPattern = regexp.MustCompile(`\[(\d*)/(\d*)\]`)
)

// Checkbox is a checkbox token found on a line.
type Checkbox struct {
	// Range covers the marker character only.
	Range Range

	// Marker is the marker character as written.
	Marker string

	// Checked is true when the marker is x or X.
	Checked bool
}

// Summary is a "[checked/total]" token found on a line.
type Summary struct {
	// Range covers the text strictly between the brackets.
	Range Range

	Checked int
	Total   int
}

// FindCheckbox returns the first checkbox token on the line.
func FindCheckbox(line Line) (Checkbox, bool) {
	m := checkboxPattern.FindStringSubmatchIndex(line.Text)
	if m == nil {
		return Checkbox{}, false
	}
	marker := line.Text[m[2]:m[3]]
	start := CharColumn(line.Text, m[2])
	return Checkbox{
		Range:   LineRange(line.Index, start, start+1),
		Marker:  marker,
		Checked: marker != MarkerUnchecked,
	}, true
}

// FindSummary returns the first summary token on the line.
func FindSummary(line Line) (Summary, bool) {
	m := summaryPattern.FindStringSubmatchIndex(line.Text)
	if m == nil {
		return Summary{}, false
	}
	// The interior starts after '[' and ends before ']'. Every byte of
	// the token is ASCII, so its character width equals its byte width.
	start := CharColumn(line.Text, m[0]+1)
	return Summary{
		Range:   LineRange(line.Index, start, start+m[1]-m[0]-2),
		Checked: parseCount(line.Text[m[2]:m[3]]),
		Total:   parseCount(line.Text[m[4]:m[5]]),
	}, true
}

// CheckboxAt returns the line's checkbox only if its marker is under pos.
func CheckboxAt(line Line, pos Position) (Checkbox, bool) {
	cb, ok := FindCheckbox(line)
	if !ok || !cb.Range.Contains(pos) {
		return Checkbox{}, false
	}
	return cb, true
}

// SummaryAt returns the line's summary only if its interior is under pos.
func SummaryAt(line Line, pos Position) (Summary, bool) {
	s, ok := FindSummary(line)
	if !ok || !s.Range.Contains(pos) {
		return Summary{}, false
	}
	return s, true
}

// ToggleMarker returns the marker that replaces current when toggled.
// A space becomes checked; anything else becomes a space.
func ToggleMarker(current, checked string) string {
	if current == MarkerUnchecked {
		return checked
	}
	return MarkerUnchecked
}

// parseCount parses a digit run. Empty or overflowing runs read as 0.
func parseCount(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}
