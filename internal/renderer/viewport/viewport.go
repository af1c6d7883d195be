// Package viewport tracks which document lines are on screen.
package viewport

import "sync"

// Viewport represents the visible portion of the document.
type Viewport struct {
	mu sync.RWMutex

	// First visible line
	topLine int

	// Rows available for text
	height int

	// Keep the cursor this many lines away from the edges
	margin int
}

// NewViewport creates a viewport with the given number of text rows.
// Height is clamped to a minimum of 1.
func NewViewport(height int) *Viewport {
	if height < 1 {
		height = 1
	}
	return &Viewport{height: height}
}

// Height returns the number of text rows.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// Resize changes the number of text rows.
func (v *Viewport) Resize(height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if height < 1 {
		height = 1
	}
	v.height = height
}

// SetMargin sets the scroll margin. It is capped so that a margin never
// exceeds half the viewport.
func (v *Viewport) SetMargin(margin int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if margin < 0 {
		margin = 0
	}
	v.margin = margin
}

func (v *Viewport) effectiveMargin() int {
	if max := (v.height - 1) / 2; v.margin > max {
		return max
	}
	return v.margin
}

// VisibleLineRange returns the visible lines as [start, end).
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.topLine + v.height
}

// IsLineVisible reports whether line is on screen.
func (v *Viewport) IsLineVisible(line int) bool {
	start, end := v.VisibleLineRange()
	return line >= start && line < end
}

// LineToScreenRow converts a document line to a screen row, or -1 if the
// line is not visible.
func (v *Viewport) LineToScreenRow(line int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if line < v.topLine || line >= v.topLine+v.height {
		return -1
	}
	return line - v.topLine
}

// ScrollToReveal scrolls minimally so that line is visible with the
// margin around it. lineCount bounds the scroll at the document end.
// Returns true if scrolling occurred.
func (v *Viewport) ScrollToReveal(line, lineCount int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	margin := v.effectiveMargin()
	top := v.topLine

	if line < top+margin {
		top = line - margin
	} else if line > top+v.height-1-margin {
		top = line - v.height + 1 + margin
	}

	if maxTop := lineCount - v.height; top > maxTop {
		top = maxTop
	}
	if top > line {
		top = line
	}
	if top < 0 {
		top = 0
	}

	if top == v.topLine {
		return false
	}
	v.topLine = top
	return true
}
