package backend

import (
	"testing"
	"time"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	style := DefaultStyle().WithForeground(ColorGreen)
	b.SetCell(2, 1, 'X', style)

	got := b.GetCell(2, 1)
	if got.Rune != 'X' || got.Style != style {
		t.Errorf("cell mismatch: got %+v", got)
	}

	// Out of bounds should be ignored
	b.SetCell(-1, 0, 'Y', style)
	b.SetCell(100, 0, 'Y', style)
	if b.LineText(0) != "" {
		t.Errorf("out of bounds write landed: %q", b.LineText(0))
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()
	DrawText(b, 0, 0, "hello", DefaultStyle(), 0)

	b.Clear()

	if got := b.LineText(0); got != "" {
		t.Errorf("clear should reset all cells, got %q", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(10, 3)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})
	if ev := b.PollEvent(); ev.Type != EventKey || ev.Key != KeyEnter {
		t.Errorf("unexpected event %+v", ev)
	}

	b.Resize(20, 5)
	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 5 {
		t.Errorf("unexpected resize event %+v", ev)
	}

	done := make(chan Event)
	go func() { done <- b.PollEvent() }()
	b.Shutdown()
	select {
	case ev := <-done:
		if ev.Type != EventNone {
			t.Errorf("expected EventNone after shutdown, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestDrawText(t *testing.T) {
	b := NewNullBackend(10, 2)
	b.Init()

	tests := []struct {
		text     string
		maxWidth int
		want     string
		cols     int
	}{
		{"- [X] a", 0, "- [X] a", 7},
		{"truncate me please", 8, "truncate", 8},
		{"日本", 0, "日 本", 4},
	}
	for _, tt := range tests {
		b.Clear()
		cols := DrawText(b, 0, 0, tt.text, DefaultStyle(), tt.maxWidth)
		if cols != tt.cols {
			t.Errorf("DrawText(%q) cols = %d, want %d", tt.text, cols, tt.cols)
		}
		if got := b.LineText(0); got != tt.want {
			t.Errorf("DrawText(%q) drew %q, want %q", tt.text, got, tt.want)
		}
	}

	if TextWidth("日本x") != 5 {
		t.Errorf("unexpected width %d", TextWidth("日本x"))
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"enter", Event{Type: EventKey, Key: KeyEnter}, "enter"},
		{"tab", Event{Type: EventKey, Key: KeyTab}, "tab"},
		{"arrow", Event{Type: EventKey, Key: KeyUp}, "up"},
		{"page", Event{Type: EventKey, Key: KeyPageDown}, "pgdn"},
		{"ctrl key", Event{Type: EventKey, Key: KeyCtrlS, Mod: ModCtrl}, "ctrl+s"},
		{"rune", Event{Type: EventKey, Key: KeyRune, Rune: 'q'}, "q"},
		{"upper rune", Event{Type: EventKey, Key: KeyRune, Rune: 'Q'}, "Q"},
		{"ctrl rune", Event{Type: EventKey, Key: KeyRune, Rune: 'T', Mod: ModCtrl}, "ctrl+t"},
		{"alt rune", Event{Type: EventKey, Key: KeyRune, Rune: 'x', Mod: ModAlt}, "alt+x"},
		{"alt named", Event{Type: EventKey, Key: KeyUp, Mod: ModAlt}, "alt+up"},
		{"unknown", Event{Type: EventKey, Key: KeyNone}, ""},
		{"resize", Event{Type: EventResize}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyName(tt.ev); got != tt.want {
				t.Errorf("KeyName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorYellow).WithAttributes(AttrBold)
	if s.Foreground != ColorYellow || s.Background != ColorDefault {
		t.Errorf("unexpected colors %+v", s)
	}
	if !s.Attributes.Has(AttrBold) || s.Attributes.Has(AttrReverse) {
		t.Errorf("unexpected attributes %v", s.Attributes)
	}
}
