package renderer

import (
	"strings"
	"testing"

	"github.com/dshills/orgmode/internal/outline"
	"github.com/dshills/orgmode/internal/renderer/backend"
)

func TestTextRows(t *testing.T) {
	tests := []struct{ height, want int }{
		{0, 1},
		{1, 1},
		{2, 1},
		{24, 23},
	}
	for _, tt := range tests {
		if got := TextRows(tt.height); got != tt.want {
			t.Errorf("TextRows(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestLineSpans(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Span
	}{
		{"plain", "just text", nil},
		{"unchecked", "- [ ] a", []Span{{2, 5, StyleUnchecked}}},
		{"checked", "- [x] a", []Span{{2, 5, StyleChecked}}},
		{"summary", "Tasks [1/3]", []Span{{6, 11, StyleSummary}}},
		{"summary done", "Tasks [3/3]", []Span{{6, 11, StyleDone}}},
		{"empty summary", "Tasks [/]", []Span{{6, 9, StyleSummary}}},
		{"both", "- [X] sub [0/2]", []Span{{2, 5, StyleChecked}, {10, 15, StyleSummary}}},
		{"after accents", "é [x] ü [1/2]", []Span{{2, 5, StyleChecked}, {8, 13, StyleSummary}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineSpans(outline.Line{Text: tt.text})
			if len(got) != len(tt.want) {
				t.Fatalf("LineSpans(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDrawLineTabs(t *testing.T) {
	b := backend.NewNullBackend(20, 1)
	_ = b.Init()

	x := drawLine(b, 0, "\t- [ ] a", nil, 20, 4, 1)
	if got := b.LineText(0); got != "    - [ ] a" {
		t.Errorf("row = %q", got)
	}
	if x != 4 {
		t.Errorf("cursor x = %d, want 4", x)
	}
}

func TestDrawLineCursorAtEnd(t *testing.T) {
	b := backend.NewNullBackend(20, 1)
	_ = b.Init()

	if x := drawLine(b, 0, "abc", nil, 20, 4, 3); x != 3 {
		t.Errorf("cursor x = %d, want 3", x)
	}
	if x := drawLine(b, 0, "abc", nil, 20, 4, -1); x != -1 {
		t.Errorf("cursor x = %d, want -1", x)
	}
}

func TestDrawLineClipsWidth(t *testing.T) {
	b := backend.NewNullBackend(5, 1)
	_ = b.Init()

	if x := drawLine(b, 0, "abcdefgh", nil, 5, 4, 7); x != -1 {
		t.Errorf("cursor x = %d, want -1 past the edge", x)
	}
	if got := b.LineText(0); got != "abcde" {
		t.Errorf("row = %q", got)
	}
}

func TestDrawLineStylesCharacters(t *testing.T) {
	b := backend.NewNullBackend(20, 1)
	_ = b.Init()

	line := outline.Line{Text: "é [x] a"}
	drawLine(b, 0, line.Text, LineSpans(line), 20, 4, -1)
	if got := b.GetCell(3, 0); got.Rune != 'x' || got.Style != StyleChecked {
		t.Errorf("cell 3 = %q %v, want checked x", got.Rune, got.Style)
	}
	if got := b.GetCell(0, 0); got.Style != StyleText {
		t.Errorf("cell 0 style = %v, want text", got.Style)
	}
}

func TestDrawLineWideRunes(t *testing.T) {
	b := backend.NewNullBackend(10, 1)
	_ = b.Init()

	// Character 2 sits after two double-width runes.
	if x := drawLine(b, 0, "日本x", nil, 10, 4, 2); x != 4 {
		t.Errorf("cursor x = %d, want 4", x)
	}
}

const sample = "Tasks [1/2]\n  - [ ] write\n  - [x] test"

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(width, height)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	return New(b), b
}

func TestRenderHighlights(t *testing.T) {
	r, b := newTestRenderer(t, 40, 6)
	doc := outline.Lines(strings.Split(sample, "\n"))

	r.Render(doc, outline.Position{Line: 1, Column: 5}, true)

	if got := b.LineText(1); got != "  - [ ] write" {
		t.Errorf("row 1 = %q", got)
	}
	if got := b.GetCell(5, 2).Style; got != StyleChecked {
		t.Errorf("checked marker style = %+v", got)
	}
	if got := b.GetCell(6, 0).Style; got != StyleSummary {
		t.Errorf("summary style = %+v", got)
	}
	if got := b.GetCell(0, 0).Style; got != StyleText {
		t.Errorf("text style = %+v", got)
	}
	if got := b.LineText(3); got != "~" {
		t.Errorf("filler row = %q", got)
	}
	if !strings.Contains(b.LineText(5), "Ln 2, Col 6") {
		t.Errorf("status = %q", b.LineText(5))
	}

	x, y, visible := b.CursorPosition()
	if !visible || x != 5 || y != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (5,1,true)", x, y, visible)
	}
	if b.ShowCount() != 1 {
		t.Errorf("Show called %d times", b.ShowCount())
	}
}

func TestRenderWithoutHighlight(t *testing.T) {
	r, b := newTestRenderer(t, 40, 6)
	doc := outline.Lines(strings.Split(sample, "\n"))

	r.Render(doc, outline.Position{}, false)

	if got := b.GetCell(5, 2).Style; got != StyleText {
		t.Errorf("marker style = %+v, want plain", got)
	}
}

func TestRenderScrollMargin(t *testing.T) {
	b := backend.NewNullBackend(20, 6)
	_ = b.Init()
	r := New(b, WithScrollMargin(1))

	lines := make(outline.Lines, 20)
	for i := range lines {
		lines[i] = string(rune('a' + i))
	}

	// Five text rows; the cursor stays one row above the bottom.
	r.Render(lines, outline.Position{Line: 6}, false)
	if top := r.Viewport().TopLine(); top != 3 {
		t.Errorf("top line = %d, want 3", top)
	}
	if got := b.LineText(0); got != "d" {
		t.Errorf("top row = %q", got)
	}
}

func TestRenderHidesCursorPastEdge(t *testing.T) {
	r, b := newTestRenderer(t, 5, 3)
	doc := outline.Lines{"abcdefgh"}

	r.Render(doc, outline.Position{Line: 0, Column: 7}, false)

	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden past the right edge")
	}
}
