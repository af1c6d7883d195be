package viewport

import "testing"

func TestNewViewport(t *testing.T) {
	v := NewViewport(0)
	if v.Height() != 1 {
		t.Errorf("Height() = %d, want 1", v.Height())
	}
	if v.TopLine() != 0 {
		t.Errorf("TopLine() = %d, want 0", v.TopLine())
	}
}

func TestScrollToReveal(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		margin    int
		top       int
		line      int
		lineCount int
		wantTop   int
		scrolled  bool
	}{
		{"visible", 10, 0, 0, 5, 100, 0, false},
		{"below", 4, 0, 0, 20, 100, 17, true},
		{"above", 4, 0, 17, 2, 100, 2, true},
		{"margin below", 10, 2, 0, 8, 100, 1, true},
		{"margin above", 10, 2, 10, 11, 100, 9, true},
		{"margin at start", 10, 2, 5, 0, 100, 0, true},
		{"end of document", 10, 2, 0, 99, 100, 90, true},
		{"short document", 10, 3, 0, 4, 5, 0, false},
		{"margin capped", 3, 5, 0, 2, 100, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(tt.height)
			v.SetMargin(tt.margin)
			v.topLine = tt.top

			if got := v.ScrollToReveal(tt.line, tt.lineCount); got != tt.scrolled {
				t.Errorf("ScrollToReveal() = %v, want %v", got, tt.scrolled)
			}
			if v.TopLine() != tt.wantTop {
				t.Errorf("TopLine() = %d, want %d", v.TopLine(), tt.wantTop)
			}
			if !v.IsLineVisible(tt.line) {
				t.Errorf("line %d not visible after scroll", tt.line)
			}
		})
	}
}

func TestLineToScreenRow(t *testing.T) {
	v := NewViewport(5)
	v.ScrollToReveal(12, 100)

	start, end := v.VisibleLineRange()
	if start != 8 || end != 13 {
		t.Fatalf("VisibleLineRange() = [%d, %d)", start, end)
	}
	if row := v.LineToScreenRow(12); row != 4 {
		t.Errorf("LineToScreenRow(12) = %d, want 4", row)
	}
	if row := v.LineToScreenRow(2); row != -1 {
		t.Errorf("LineToScreenRow(2) = %d, want -1", row)
	}
}

func TestResize(t *testing.T) {
	v := NewViewport(5)
	v.Resize(20)
	if v.Height() != 20 {
		t.Errorf("Height() = %d", v.Height())
	}
	v.Resize(-3)
	if v.Height() != 1 {
		t.Errorf("Height() = %d, want 1", v.Height())
	}
}
