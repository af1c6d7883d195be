package outline

import "strconv"

// Recompute counts the direct children of line that carry a checkbox and
// how many of those are checked. Children without a checkbox are ignored.
func Recompute(doc Document, line Line) (checked, total int) {
	for _, child := range Children(doc, line) {
		cb, ok := FindCheckbox(child)
		if !ok {
			continue
		}
		total++
		if cb.Checked {
			checked++
		}
	}
	return checked, total
}

// FormatSummary renders the interior text of a summary token.
func FormatSummary(checked, total int) string {
	return strconv.Itoa(checked) + "/" + strconv.Itoa(total)
}
