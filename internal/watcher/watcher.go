// Package watcher reports external changes to the open document.
//
// It watches the document's directory with fsnotify, keeps only events
// for the document itself, and coalesces bursts of events (editors and
// atomic saves produce several) into a single debounced Event.
package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/orgmode/internal/logging"
)

// DefaultDebounce is the quiet period before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name. Combined operations are joined by "|".
func (op Op) String() string {
	var names []string
	for _, o := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op.Has(o.op) {
			names = append(names, o.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// Event reports that the watched file changed.
type Event struct {
	// Path is the absolute path of the file.
	Path string
	// Op combines every operation seen during the debounce window.
	Op Op
	// Time is when the last operation was seen.
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration. Zero reports every event.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the watcher's logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.logger = l.WithComponent("watcher")
	}
}

// Watcher watches a single file for external changes.
type Watcher struct {
	mu sync.Mutex

	fsw    *fsnotify.Watcher
	path   string
	delay  time.Duration
	logger *logging.Logger

	events chan Event
	errors chan error

	pending *Event
	timer   *time.Timer

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// New starts watching path. The file need not exist yet; its directory must.
func New(path string, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		path:    absPath,
		delay:   DefaultDebounce,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching file", "path", absPath)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the debounced event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = nil
	w.mu.Unlock()

	w.closedWg.Wait()

	w.mu.Lock()
	close(w.events)
	close(w.errors)
	w.mu.Unlock()

	return w.fsw.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "path", w.path, "err", err)
			w.mu.Lock()
			if !w.closed {
				select {
				case w.errors <- err:
				default:
				}
			}
			w.mu.Unlock()
		}
	}
}

// handleFSEvent filters an fsnotify event to the watched file and
// schedules a debounced Event.
func (w *Watcher) handleFSEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	now := time.Now()
	if w.pending != nil {
		w.pending.Op |= op
		w.pending.Time = now
		w.timer.Reset(w.delay)
		return
	}

	w.pending = &Event{Path: w.path, Op: op, Time: now}
	if w.delay == 0 {
		w.fireLocked()
		return
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fireLocked()
}

// fireLocked sends the pending event, dropping it when the channel is full.
func (w *Watcher) fireLocked() {
	if w.closed || w.pending == nil {
		return
	}
	ev := *w.pending
	w.pending = nil

	select {
	case w.events <- ev:
		w.logger.Debug("file changed", "path", ev.Path, "op", ev.Op)
	default:
		w.logger.Warn("event channel full, dropping event", "path", ev.Path)
	}
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod alone is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
