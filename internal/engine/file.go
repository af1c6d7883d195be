package engine

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dshills/orgmode/internal/engine/buffer"
	"github.com/dshills/orgmode/internal/engine/cursor"
)

// Open loads the file at path into a new Engine. A missing file opens as
// an empty document that will be created on Save.
func Open(path string, opts ...Option) (*Engine, error) {
	opts = append(opts, WithPath(path))

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return New(opts...), nil
	}
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	e, err := NewFromReader(f, opts...)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return e, nil
}

// Save writes the document to its path.
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.path == "" {
		return ErrNoPath
	}
	if e.readOnly {
		return ErrReadOnly
	}
	return e.writeLocked(e.path)
}

// SaveAs writes the document to path and makes path its backing file.
func (e *Engine) SaveAs(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.writeLocked(path); err != nil {
		return err
	}
	e.path = path
	return nil
}

// writeLocked writes atomically using a temp file and rename.
func (e *Engine) writeLocked(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &FileError{Op: "save", Path: path, Err: err}
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(e.buf.Text()), 0o644); err != nil {
		return &FileError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return &FileError{Op: "save", Path: path, Err: err}
	}

	e.buf.MarkSaved()
	return nil
}

// Reload replaces the buffer with the file's current content, discarding
// local changes and undo history. It reports whether the content changed.
func (e *Engine) Reload() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.path == "" {
		return false, ErrNoPath
	}

	data, err := os.ReadFile(e.path)
	if err != nil {
		return false, &FileError{Op: "reload", Path: e.path, Err: err}
	}
	if bytes.Equal(data, []byte(e.buf.Text())) {
		e.buf.MarkSaved()
		return false, nil
	}

	e.buf, err = buffer.NewBufferFromReader(bytes.NewReader(data), e.bufferOptions()...)
	if err != nil {
		return false, &FileError{Op: "reload", Path: e.path, Err: err}
	}
	e.history.Clear()
	e.cur = cursor.New(e.cur.Point()).Clamp(e.buf)
	return true, nil
}
