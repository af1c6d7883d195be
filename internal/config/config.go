package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/orgmode/internal/engine/buffer"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
)

// PlainTextLanguageID is the language id of files that are not outlines.
const PlainTextLanguageID = "plaintext"

// Config holds the resolved configuration.
type Config struct {
	Outline OutlineConfig     `toml:"outline"`
	Editor  EditorConfig      `toml:"editor"`
	Logging LoggingConfig     `toml:"logging"`
	Keymap  map[string]string `toml:"keymap"`
	Plugins PluginsConfig     `toml:"plugins"`
}

// OutlineConfig controls which documents are outlines and how they are edited.
type OutlineConfig struct {
	// LanguageID is the language id the outline actions act on.
	LanguageID string `toml:"language_id"`

	// Extensions are the file extensions opened as outlines.
	Extensions []string `toml:"extensions"`

	// CheckedMarker is written when a checkbox is checked ("x" or "X").
	CheckedMarker string `toml:"checked_marker"`
}

// EditorConfig holds document settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab.
	TabWidth int `toml:"tab_width"`

	// LineEnding forces the line ending for opened files. Empty detects
	// it from the file content.
	LineEnding string `toml:"line_ending"`

	// ScrollMargin is the number of lines kept between the cursor and
	// the top or bottom of the screen.
	ScrollMargin int `toml:"scroll_margin"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum level written (debug, info, warn, error).
	Level string `toml:"level"`

	// File is the log file used by the interactive editor.
	File string `toml:"file"`
}

// PluginsConfig lists the Lua scripts loaded at startup.
type PluginsConfig struct {
	// Scripts are loaded in order.
	Scripts []string `toml:"scripts"`

	// Timeout bounds each script call.
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration read from a TOML string such as "2s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Outline: OutlineConfig{
			LanguageID:    outline.DefaultLanguageID,
			Extensions:    []string{".org"},
			CheckedMarker: outline.MarkerChecked,
		},
		Editor: EditorConfig{
			TabWidth: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Keymap: map[string]string{},
		Plugins: PluginsConfig{
			Timeout: Duration(2 * time.Second),
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Outline.LanguageID) == "" {
		errs = append(errs, &ValidationError{Path: "outline.language_id", Value: c.Outline.LanguageID, Message: "must not be empty"})
	}
	if c.Outline.CheckedMarker != "x" && c.Outline.CheckedMarker != "X" {
		errs = append(errs, &ValidationError{Path: "outline.checked_marker", Value: c.Outline.CheckedMarker, Message: `must be "x" or "X"`})
	}
	for _, ext := range c.Outline.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, &ValidationError{Path: "outline.extensions", Value: ext, Message: "must start with a dot"})
		}
	}
	if c.Editor.TabWidth <= 0 {
		errs = append(errs, &ValidationError{Path: "editor.tab_width", Value: c.Editor.TabWidth, Message: "must be positive"})
	}
	if c.Editor.ScrollMargin < 0 {
		errs = append(errs, &ValidationError{Path: "editor.scroll_margin", Value: c.Editor.ScrollMargin, Message: "must not be negative"})
	}
	if c.Editor.LineEnding != "" {
		if _, ok := buffer.ParseLineEnding(c.Editor.LineEnding); !ok {
			errs = append(errs, &ValidationError{Path: "editor.line_ending", Value: c.Editor.LineEnding, Message: "must be lf, crlf or cr"})
		}
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"})
	}
	if c.Plugins.Timeout < 0 {
		errs = append(errs, &ValidationError{Path: "plugins.timeout", Value: c.Plugins.Timeout.Std(), Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// LanguageFor returns the language id for a file path: the outline
// language id for configured extensions, PlainTextLanguageID otherwise.
// Extension matching ignores case.
func (c *Config) LanguageFor(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return PlainTextLanguageID
	}
	for _, e := range c.Outline.Extensions {
		if strings.EqualFold(e, ext) {
			return c.Outline.LanguageID
		}
	}
	return PlainTextLanguageID
}

// LineEnding returns the configured line ending and whether one is set.
func (c *Config) LineEnding() (buffer.LineEnding, bool) {
	if c.Editor.LineEnding == "" {
		return buffer.LineEndingLF, false
	}
	return buffer.ParseLineEnding(c.Editor.LineEnding)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}
