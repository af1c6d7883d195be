// Package logging provides leveled, structured logging built on
// charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Level is a logging severity.
type Level = log.Level

// Log levels.
const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// ParseLevel parses a level name (debug, info, warn, error).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "warning":
		return LevelWarn, nil
	case "debug", "info", "warn", "error":
		return log.ParseLevel(strings.ToLower(s))
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}

// Config configures a Logger.
type Config struct {
	// Level is the minimum level written.
	Level Level

	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer

	// Prefix is prepended to every message.
	Prefix string

	// ReportTimestamp adds a timestamp to every line.
	ReportTimestamp bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "orgmode",
	}
}

// Logger writes structured key/value log lines.
// A nil *Logger discards everything.
type Logger struct {
	l *log.Logger
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		l: log.NewWithOptions(cfg.Output, log.Options{
			Level:           cfg.Level,
			Prefix:          cfg.Prefix,
			ReportTimestamp: cfg.ReportTimestamp,
			TimeFormat:      time.TimeOnly,
			Formatter:       log.TextFormatter,
		}),
	}
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

// With returns a logger that adds the given key/value pairs to every line.
func (l *Logger) With(keyvals ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{l: l.l.With(keyvals...)}
}

// WithComponent returns a logger tagged with the component name.
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.l.SetLevel(level)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.l.Debug(msg, keyvals...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.l.Info(msg, keyvals...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.l.Warn(msg, keyvals...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, keyvals ...any) {
	if l == nil {
		return
	}
	l.l.Error(msg, keyvals...)
}

// OpenFile opens (creating parent directories) a log file for appending.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
