// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/orgmode/internal/engine/buffer"
	"github.com/dshills/orgmode/internal/engine/cursor"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/outline"
)

// EngineInterface abstracts the document engine for handlers.
// It is the outline host plus cursor, history and file operations.
type EngineInterface interface {
	outline.Host

	// Cursor operations
	CursorPoint() buffer.Point
	SetCursor(p buffer.Point)
	MoveCursor(motion func(cursor.Cursor, cursor.LineReader) cursor.Cursor) buffer.Point

	// History
	Undo() error
	Redo() error

	// File operations
	Save() error
	SaveAs(path string) error
	Reload() (bool, error)
	Path() string

	// State
	Modified() bool
	ReadOnly() bool
}

// ExecutionContext provides context for action execution.
// It contains references to the editor subsystems handlers need.
type ExecutionContext struct {
	// Engine provides access to the open document.
	Engine EngineInterface

	// Logger receives handler diagnostics. May be nil.
	Logger *logging.Logger

	// ViewHeight is the number of visible document lines, used by
	// page motions. Zero when there is no view.
	ViewHeight int

	// Execution options
	Count int // Repeat count (1 if not specified)

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count: 1,
		Data:  make(map[string]interface{}),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(logger *logging.Logger) *ExecutionContext {
	ctx.Logger = logger
	return ctx
}

// WithViewHeight returns the context with the view height set.
func (ctx *ExecutionContext) WithViewHeight(height int) *ExecutionContext {
	ctx.ViewHeight = height
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// FilePath returns the open document's path, or "".
func (ctx *ExecutionContext) FilePath() string {
	if ctx.Engine == nil {
		return ""
	}
	return ctx.Engine.Path()
}

// IsReadOnly returns true if the document is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Engine != nil && ctx.Engine.ReadOnly()
}

// IsModified returns true if the document has unsaved changes.
func (ctx *ExecutionContext) IsModified() bool {
	return ctx.Engine != nil && ctx.Engine.Modified()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
