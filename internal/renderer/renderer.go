package renderer

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/orgmode/internal/outline"
	"github.com/dshills/orgmode/internal/renderer/backend"
	"github.com/dshills/orgmode/internal/renderer/statusline"
	"github.com/dshills/orgmode/internal/renderer/viewport"
)

// DefaultTabWidth is used when no tab width is configured.
const DefaultTabWidth = 4

// Renderer draws the document and status line.
type Renderer struct {
	backend  backend.Backend
	viewport *viewport.Viewport
	status   *statusline.StatusLine
	tabWidth int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTabWidth sets the tab stop width.
func WithTabWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.tabWidth = width
		}
	}
}

// WithScrollMargin keeps the cursor this many lines from the screen edges.
func WithScrollMargin(lines int) Option {
	return func(r *Renderer) {
		r.viewport.SetMargin(lines)
	}
}

// New creates a renderer for b.
func New(b backend.Backend, opts ...Option) *Renderer {
	_, height := b.Size()
	r := &Renderer{
		backend:  b,
		viewport: viewport.NewViewport(TextRows(height)),
		status:   statusline.New(),
		tabWidth: DefaultTabWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TextRows is the number of document rows for a screen height; the last
// row is the status line.
func TextRows(height int) int {
	if height <= 1 {
		return 1
	}
	return height - 1
}

// StatusLine returns the status line component.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// Viewport returns the viewport.
func (r *Renderer) Viewport() *viewport.Viewport {
	return r.viewport
}

// Resize adapts the viewport to a new screen height.
func (r *Renderer) Resize(height int) {
	r.viewport.Resize(TextRows(height))
}

// Render redraws the whole screen with the cursor at cur. highlight turns
// on outline token styling.
func (r *Renderer) Render(doc outline.Document, cur outline.Position, highlight bool) {
	b := r.backend
	width, height := b.Size()
	if width <= 0 || height <= 0 {
		return
	}
	b.Clear()

	rows := TextRows(height)
	r.viewport.Resize(rows)
	r.viewport.ScrollToReveal(cur.Line, doc.LineCount())
	top := r.viewport.TopLine()

	cursorX, cursorY := -1, -1
	for row := 0; row < rows && row < height; row++ {
		n := top + row
		if n >= doc.LineCount() {
			backend.DrawText(b, 0, row, "~", StyleFiller, width)
			continue
		}

		line := outline.Line{Index: n, Text: doc.LineText(n)}
		var spans []Span
		if highlight {
			spans = LineSpans(line)
		}

		col := -1
		if n == cur.Line {
			col = cur.Column
		}
		x := drawLine(b, row, line.Text, spans, width, r.tabWidth, col)
		if n == cur.Line && x >= 0 {
			cursorX, cursorY = x, row
		}
	}

	if height > 1 {
		r.status.SetPosition(cur.Line, cur.Column)
		r.status.Render(b, height-1, width)
	}

	if cursorX >= 0 && cursorX < width {
		b.ShowCursor(cursorX, cursorY)
	} else {
		b.HideCursor()
	}
	b.Show()
}

// Span styles the characters [Start, End) of a line.
type Span struct {
	Start, End int
	Style      backend.Style
}

// LineSpans returns the highlighted tokens of an outline line: the
// checkbox token and the summary token including their brackets.
func LineSpans(line outline.Line) []Span {
	var spans []Span
	if cb, ok := outline.FindCheckbox(line); ok {
		style := StyleUnchecked
		if cb.Checked {
			style = StyleChecked
		}
		spans = append(spans, Span{cb.Range.Start.Column - 1, cb.Range.End.Column + 1, style})
	}
	if s, ok := outline.FindSummary(line); ok {
		style := StyleSummary
		if s.Total > 0 && s.Checked == s.Total {
			style = StyleDone
		}
		spans = append(spans, Span{s.Range.Start.Column - 1, s.Range.End.Column + 1, style})
	}
	return spans
}

func styleAt(spans []Span, i int) backend.Style {
	for _, s := range spans {
		if i >= s.Start && i < s.End {
			return s.Style
		}
	}
	return StyleText
}

// drawLine draws text on row with tabs expanded. It returns the screen
// column of character offset cursorCol, or -1 when cursorCol is negative
// or past the right edge.
func drawLine(b backend.Backend, row int, text string, spans []Span, width, tabWidth, cursorCol int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	x, cursorX, i := 0, -1, -1
	for _, r := range text {
		i++
		if i == cursorCol {
			cursorX = x
		}
		if x >= width {
			break
		}
		style := styleAt(spans, i)

		if r == '\t' {
			next := x + tabWidth - x%tabWidth
			for ; x < next && x < width; x++ {
				b.SetCell(x, row, ' ', style)
			}
			continue
		}

		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			x = width
			break
		}
		b.SetCell(x, row, r, style)
		x += w
	}

	if cursorCol >= utf8.RuneCountInString(text) && cursorX < 0 && x < width {
		cursorX = x
	}
	return cursorX
}
