package backend

// Color is a terminal palette color. ColorDefault leaves the terminal's
// own color in place.
type Color int16

// Palette colors used by the editor.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
	ColorGray    Color = 8
)

// Attr is a set of text attributes.
type Attr uint8

// Text attributes.
const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrUnderline
	AttrReverse
)

// Has returns true if a contains attr.
func (a Attr) Has(attr Attr) bool {
	return a&attr != 0
}

// Style describes how a cell is drawn.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attr
}

// DefaultStyle returns the terminal's default style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// WithForeground returns a copy of s with the foreground set.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns a copy of s with the background set.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}

// WithAttributes returns a copy of s with attrs added.
func (s Style) WithAttributes(attrs Attr) Style {
	s.Attributes |= attrs
	return s
}
