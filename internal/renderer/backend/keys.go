package backend

import (
	"strings"
	"unicode"
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlQ:     "ctrl+q",
	KeyCtrlR:     "ctrl+r",
	KeyCtrlS:     "ctrl+s",
	KeyCtrlY:     "ctrl+y",
	KeyCtrlZ:     "ctrl+z",
}

// KeyName renders a key event in keymap notation: "enter", "up",
// "ctrl+s", "alt+x" or a bare rune such as "q". Non-key events and
// unknown keys return "".
func KeyName(ev Event) string {
	if ev.Type != EventKey {
		return ""
	}

	if ev.Key == KeyRune {
		if ev.Rune == 0 || !unicode.IsPrint(ev.Rune) {
			return ""
		}
		var prefix strings.Builder
		if ev.Mod.Has(ModCtrl) {
			prefix.WriteString("ctrl+")
		}
		if ev.Mod.Has(ModAlt) {
			prefix.WriteString("alt+")
		}
		r := ev.Rune
		if prefix.Len() > 0 {
			r = unicode.ToLower(r)
		}
		return prefix.String() + string(r)
	}

	name, ok := keyNames[ev.Key]
	if !ok {
		return ""
	}
	if ev.Mod.Has(ModAlt) {
		name = "alt+" + name
	}
	return name
}
