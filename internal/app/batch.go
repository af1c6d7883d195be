package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/orgmode/internal/dispatcher/handlers/file"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/orgmode"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/outline"
)

// BatchOptions describes a single non-interactive action.
type BatchOptions struct {
	// Line and Column are 1-based. Column counts characters and is
	// clamped to the line length.
	Line, Column int

	// Action is "navigate", "expand" or a full action name such as a
	// plugin command. Empty means navigate.
	Action string

	// Write saves the document instead of printing it.
	Write bool

	// Output, when set, writes the document to this file instead of
	// printing it. The source file is left untouched.
	Output string
}

// ParsePosition parses "LINE:COL" or "LINE" (column 1).
func ParsePosition(s string) (line, col int, err error) {
	lineStr, colStr, hasCol := strings.Cut(strings.TrimSpace(s), ":")
	line, err = strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	col = 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
		}
	}
	return line, col, nil
}

// actionName resolves a batch action to a dispatcher action name.
func actionName(name string) string {
	switch name {
	case "", "navigate":
		return orgmode.ActionNavigate
	case "expand":
		return orgmode.ActionExpand
	default:
		return name
	}
}

// Batch runs one action at a position. The resulting document is written
// to out, or saved to its file when opts.Write is set.
func (app *Application) Batch(opts BatchOptions, out io.Writer) error {
	if opts.Line < 1 || opts.Line > app.engine.LineCount() || opts.Column < 1 {
		return fmt.Errorf("%w: %d:%d (document has %d lines)",
			ErrInvalidPosition, opts.Line, opts.Column, app.engine.LineCount())
	}
	app.engine.MoveTo(outline.Position{Line: opts.Line - 1, Column: opts.Column - 1})

	action := input.Action{Name: actionName(opts.Action), Source: input.SourceAPI}
	result := app.dispatcher.Dispatch(action)
	if result.IsError() {
		return result.Error
	}
	app.logger.Info("batch action", "action", action.Name, "status", result.Status, "message", result.Message)

	if opts.Output != "" {
		res := app.dispatcher.Dispatch(input.Action{
			Name:   file.ActionSaveAs,
			Source: input.SourceAPI,
			Args:   input.ActionArgs{Text: opts.Output},
		})
		return res.Error
	}
	if opts.Write {
		if !app.engine.Modified() {
			return nil
		}
		return app.engine.Save()
	}
	_, err := io.WriteString(out, app.engine.Text())
	return err
}
