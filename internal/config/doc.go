// Package config provides the configuration system for orgmode.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by cmd)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← ORGMODE_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/orgmode/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Config File
//
//	[outline]
//	language_id = "orgmode"
//	extensions = [".org", ".todo"]
//	checked_marker = "X"
//
//	[editor]
//	tab_width = 4
//	scroll_margin = 0
//	line_ending = ""        # "", "lf", "crlf" or "cr"; empty detects
//
//	[logging]
//	level = "info"
//	file = "~/.local/state/orgmode/orgmode.log"
//
//	[keymap]
//	"ctrl+t" = "orgmode.navigate"
//	"tab" = ""              # unbind
//
//	[plugins]
//	scripts = ["~/.config/orgmode/plugins/stats.lua"]
//	timeout = "2s"
//
// A missing file is not an error; the defaults apply.
package config
