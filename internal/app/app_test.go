package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/orgmode/internal/config"
	"github.com/dshills/orgmode/internal/dispatcher/handlers/orgmode"
	"github.com/dshills/orgmode/internal/engine"
	"github.com/dshills/orgmode/internal/input"
	"github.com/dshills/orgmode/internal/renderer/backend"
	"github.com/dshills/orgmode/internal/watcher"
)

const sampleDoc = "Tasks [/]\n  - [ ] write\n  - [x] test\n"

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.LogOutput == nil {
		opts.LogOutput = io.Discard
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

// runApp starts the event loop and returns a channel with its result.
func runApp(t *testing.T, a *Application, b backend.Backend) <-chan error {
	t.Helper()
	if err := a.SetBackend(b); err != nil {
		t.Fatalf("SetBackend() error = %v", err)
	}
	errc := make(chan error, 1)
	go func() { errc <- a.Run() }()
	return errc
}

func waitRun(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func key(k backend.Key) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: k}
}

func TestNewScratch(t *testing.T) {
	a := newTestApp(t, Options{})

	if a.Engine().Path() != "" {
		t.Errorf("Path() = %q, want empty", a.Engine().Path())
	}
	if a.Engine().LanguageID() != "orgmode" {
		t.Errorf("LanguageID() = %q", a.Engine().LanguageID())
	}
	if !a.Dispatcher().CanDispatch(ActionQuit) {
		t.Error("app.quit not registered")
	}
}

func TestNewLanguageFromExtension(t *testing.T) {
	org := newTestApp(t, Options{Path: writeDoc(t, "todo.org", sampleDoc), NoWatch: true})
	if org.Engine().LanguageID() != "orgmode" {
		t.Errorf(".org language = %q", org.Engine().LanguageID())
	}

	txt := newTestApp(t, Options{Path: writeDoc(t, "notes.txt", sampleDoc), NoWatch: true})
	if txt.Engine().LanguageID() != config.PlainTextLanguageID {
		t.Errorf(".txt language = %q", txt.Engine().LanguageID())
	}
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.TabWidth = 0

	_, err := New(Options{Config: cfg, LogOutput: io.Discard})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Errorf("New() error = %v, want config InitError", err)
	}
}

func TestNewInvalidLogLevel(t *testing.T) {
	_, err := New(Options{Config: config.Default(), LogOutput: io.Discard, LogLevel: "loud"})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "logging" {
		t.Errorf("New() error = %v, want logging InitError", err)
	}
}

func TestRunRequiresBackend(t *testing.T) {
	a := newTestApp(t, Options{})
	if err := a.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() error = %v, want ErrNoBackend", err)
	}
}

func TestRunNavigateAndQuit(t *testing.T) {
	path := writeDoc(t, "todo.org", sampleDoc)
	a := newTestApp(t, Options{Path: path, NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 1, Column: 5})

	b := backend.NewNullBackend(40, 6)
	errc := runApp(t, a, b)

	b.PostEvent(key(backend.KeyEnter))
	b.PostEvent(key(backend.KeyCtrlQ))
	b.PostEvent(key(backend.KeyCtrlQ))

	if err := waitRun(t, errc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := a.Engine().LineText(1); got != "  - [X] write" {
		t.Errorf("line 1 = %q", got)
	}
	if b.ShowCount() == 0 {
		t.Error("screen never drawn")
	}
}

func TestRunQuitUnmodified(t *testing.T) {
	a := newTestApp(t, Options{})
	b := backend.NewNullBackend(40, 6)
	errc := runApp(t, a, b)

	b.PostEvent(key(backend.KeyCtrlQ))
	if err := waitRun(t, errc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRunShutdown(t *testing.T) {
	a := newTestApp(t, Options{})
	b := backend.NewNullBackend(40, 6)
	errc := runApp(t, a, b)

	deadline := time.Now().Add(2 * time.Second)
	for !a.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	a.Shutdown()

	if err := waitRun(t, errc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	select {
	case <-a.Done():
	default:
		t.Error("Done() not closed")
	}
}

func TestRunAlreadyRunning(t *testing.T) {
	a := newTestApp(t, Options{})
	b := backend.NewNullBackend(40, 6)
	errc := runApp(t, a, b)

	deadline := time.Now().Add(2 * time.Second)
	for !a.IsRunning() && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := a.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}

	b.PostEvent(key(backend.KeyCtrlQ))
	_ = waitRun(t, errc)
}

func TestHandleKeyUsesConfigKeymap(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap = map[string]string{"ctrl+t": "orgmode.navigate", "enter": ""}

	a := newTestApp(t, Options{Config: cfg, Path: writeDoc(t, "todo.org", sampleDoc), NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 2, Column: 5})

	if err := a.handleEvent(key(backend.KeyEnter)); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if a.Engine().Modified() {
		t.Fatal("unbound enter changed the document")
	}

	ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 't', Mod: backend.ModCtrl}
	if err := a.handleEvent(ev); err != nil {
		t.Fatalf("ctrl+t: %v", err)
	}
	if got := a.Engine().LineText(2); got != "  - [ ] test" {
		t.Errorf("line 2 = %q", got)
	}
}

func TestHandleKeySummary(t *testing.T) {
	a := newTestApp(t, Options{Path: writeDoc(t, "todo.org", sampleDoc), NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 0, Column: 7})

	if err := a.handleEvent(key(backend.KeyEnter)); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if got := a.Engine().LineText(0); got != "Tasks [1/2]" {
		t.Errorf("line 0 = %q", got)
	}
	if a.Message() != "[1/2]" {
		t.Errorf("Message() = %q", a.Message())
	}
}

func TestHandleKeyErrorMessage(t *testing.T) {
	a := newTestApp(t, Options{ReadOnly: true, Path: writeDoc(t, "todo.org", sampleDoc), NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 1, Column: 5})

	if err := a.handleEvent(key(backend.KeyEnter)); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !strings.HasPrefix(a.Message(), "Error:") {
		t.Errorf("Message() = %q, want error", a.Message())
	}
}

func TestQuitArmResetByOtherAction(t *testing.T) {
	a := newTestApp(t, Options{Path: writeDoc(t, "todo.org", sampleDoc), NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 1, Column: 5})
	_ = a.handleEvent(key(backend.KeyEnter))

	if err := a.handleEvent(key(backend.KeyCtrlQ)); err != nil {
		t.Fatalf("first quit returned %v", err)
	}
	_ = a.handleEvent(key(backend.KeyDown))
	if err := a.handleEvent(key(backend.KeyCtrlQ)); err != nil {
		t.Fatalf("quit after reset returned %v", err)
	}
	if err := a.handleEvent(key(backend.KeyCtrlQ)); !errors.Is(err, ErrQuit) {
		t.Errorf("second consecutive quit returned %v, want ErrQuit", err)
	}
}

func TestResizeUpdatesPageSize(t *testing.T) {
	a := newTestApp(t, Options{Path: writeDoc(t, "long.org", strings.Repeat("line\n", 30)), NoWatch: true})
	if err := a.SetBackend(backend.NewNullBackend(40, 20)); err != nil {
		t.Fatal(err)
	}

	// Six rows leave five for text; a page keeps one line of overlap.
	if err := a.handleEvent(backend.Event{Type: backend.EventResize, Width: 40, Height: 6}); err != nil {
		t.Fatal(err)
	}
	if err := a.handleEvent(key(backend.KeyPageDown)); err != nil {
		t.Fatal(err)
	}
	if got := a.Engine().CursorPoint().Line; got != 4 {
		t.Errorf("cursor line after pgdn = %d, want 4", got)
	}
}

func TestPluginsLoadedFromConfig(t *testing.T) {
	script := writeDoc(t, "tally.lua", `org.command("plugin.tally", function() return "ok" end)`)
	broken := writeDoc(t, "broken.lua", `nope(`)

	cfg := config.Default()
	cfg.Plugins.Scripts = []string{script, broken}

	a := newTestApp(t, Options{Config: cfg})
	if got := a.Plugins().Commands(); len(got) != 1 || got[0] != "plugin.tally" {
		t.Errorf("Commands() = %v", got)
	}
	if !strings.Contains(a.Message(), "Plugin error") {
		t.Errorf("Message() = %q", a.Message())
	}

	a.Keymap().Add("ctrl+t", "plugin.tally")
	ev := backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 't', Mod: backend.ModCtrl}
	if err := a.handleEvent(ev); err != nil {
		t.Fatal(err)
	}
	if a.Message() != "ok" {
		t.Errorf("Message() = %q, want ok", a.Message())
	}
}

func TestHandleFileEventReloads(t *testing.T) {
	path := writeDoc(t, "todo.org", sampleDoc)
	a := newTestApp(t, Options{Path: path, NoWatch: true})

	updated := "Tasks [/]\n  - [x] write\n  - [x] test\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	a.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpWrite})

	if a.Engine().Text() != updated {
		t.Errorf("Text() = %q", a.Engine().Text())
	}
	if !strings.Contains(a.Message(), "Reloaded") {
		t.Errorf("Message() = %q", a.Message())
	}
}

func TestHandleFileEventKeepsLocalChanges(t *testing.T) {
	path := writeDoc(t, "todo.org", sampleDoc)
	a := newTestApp(t, Options{Path: path, NoWatch: true})
	a.Engine().SetCursor(engine.Point{Line: 1, Column: 5})
	_ = a.handleEvent(key(backend.KeyEnter))
	local := a.Engine().Text()

	if err := os.WriteFile(path, []byte("other\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpWrite})

	if a.Engine().Text() != local {
		t.Error("local changes were discarded")
	}
	if !strings.Contains(a.Message(), "unsaved changes") {
		t.Errorf("Message() = %q", a.Message())
	}
}

func TestHandleFileEventRemoved(t *testing.T) {
	path := writeDoc(t, "todo.org", sampleDoc)
	a := newTestApp(t, Options{Path: path, NoWatch: true})

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	a.handleFileEvent(watcher.Event{Path: path, Op: watcher.OpRemove})

	if a.Engine().Text() != sampleDoc {
		t.Error("buffer changed after removal")
	}
	if a.Message() != "File removed on disk" {
		t.Errorf("Message() = %q", a.Message())
	}
}

func TestWatcherReloadsDuringRun(t *testing.T) {
	path := writeDoc(t, "todo.org", sampleDoc)
	a := newTestApp(t, Options{Path: path})
	b := backend.NewNullBackend(40, 6)
	errc := runApp(t, a, b)

	updated := "Tasks [2/2]\n  - [x] write\n  - [x] test\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for a.Engine().Text() != updated && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if a.Engine().Text() != updated {
		t.Errorf("document not reloaded: %q", a.Engine().Text())
	}

	b.PostEvent(key(backend.KeyCtrlQ))
	if err := waitRun(t, errc); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestShutdownLogsDispatchStats(t *testing.T) {
	var logs bytes.Buffer
	a := newTestApp(t, Options{
		Path:      writeDoc(t, "todo.org", sampleDoc),
		NoWatch:   true,
		LogLevel:  "debug",
		LogOutput: &logs,
	})

	if err := a.execute(input.Action{Name: orgmode.ActionExpand}); err != nil {
		t.Fatalf("execute() error = %v", err)
	}
	a.Shutdown()

	out := logs.String()
	for _, want := range []string{"dispatch stats", "orgmode.expand=1", "orgmode.expand.avg="} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
