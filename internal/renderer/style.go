package renderer

import "github.com/dshills/orgmode/internal/renderer/backend"

// Styles used for document text.
var (
	StyleText      = backend.DefaultStyle()
	StyleFiller    = backend.DefaultStyle().WithForeground(backend.ColorBlue)
	StyleChecked   = backend.DefaultStyle().WithForeground(backend.ColorGreen).WithAttributes(backend.AttrBold)
	StyleUnchecked = backend.DefaultStyle().WithForeground(backend.ColorYellow)
	StyleSummary   = backend.DefaultStyle().WithForeground(backend.ColorCyan).WithAttributes(backend.AttrBold)
	StyleDone      = backend.DefaultStyle().WithForeground(backend.ColorGreen).WithAttributes(backend.AttrBold)
)
