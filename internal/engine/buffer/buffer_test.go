package buffer

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.Modified() {
		t.Error("new buffer should not be modified")
	}
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\r\nline3\rline4")

	want := []string{"line1", "line2", "line3", "line4"}
	if b.LineCount() != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), b.LineCount())
	}
	for i, w := range want {
		if got := b.LineText(i); got != w {
			t.Errorf("line %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestNewBufferFromStringTrailingNewline(t *testing.T) {
	b := NewBufferFromString("a\n")
	if b.LineCount() != 2 || b.LineText(1) != "" {
		t.Errorf("expected [a, \"\"], got %d lines", b.LineCount())
	}
	if b.Text() != "a\n" {
		t.Errorf("expected round trip, got %q", b.Text())
	}
}

func TestNewBufferFromReaderDetectsLineEnding(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("a\r\nb\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LineEnding() != LineEndingCRLF {
		t.Errorf("expected CRLF, got %s", b.LineEnding())
	}
	if b.Text() != "a\r\nb\r\n" {
		t.Errorf("expected CRLF round trip, got %q", b.Text())
	}
}

func TestLineTextOutOfRange(t *testing.T) {
	b := NewBufferFromString("only")
	if got := b.LineText(5); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := b.LineText(-1); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestBufferReplaceSingleLine(t *testing.T) {
	b := NewBufferFromString("- [ ] a\n- [x] b")

	end, err := b.Replace(NewPointRange(Point{0, 3}, Point{0, 4}), "X")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if end != (Point{0, 4}) {
		t.Errorf("expected end (0:4), got %s", end)
	}
	if b.LineText(0) != "- [X] a" {
		t.Errorf("expected '- [X] a', got %q", b.LineText(0))
	}
	if !b.Modified() {
		t.Error("buffer should be modified after replace")
	}
}

func TestBufferReplaceGrowsLine(t *testing.T) {
	b := NewBufferFromString("[/] total")

	end, err := b.Replace(NewPointRange(Point{0, 1}, Point{0, 2}), "12/30")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.LineText(0) != "[12/30] total" {
		t.Errorf("unexpected line %q", b.LineText(0))
	}
	if end != (Point{0, 6}) {
		t.Errorf("expected end (0:6), got %s", end)
	}
}

func TestBufferReplaceMultiLine(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	end, err := b.Replace(NewPointRange(Point{0, 1}, Point{2, 2}), "X\nY")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.Text() != "oX\nYree" {
		t.Errorf("unexpected text %q", b.Text())
	}
	if end != (Point{1, 1}) {
		t.Errorf("expected end (1:1), got %s", end)
	}
}

func TestBufferInsertNewline(t *testing.T) {
	b := NewBufferFromString("hello world")

	end, err := b.Insert(Point{0, 5}, "\n")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if end != (Point{1, 0}) {
		t.Errorf("expected end (1:0), got %s", end)
	}
	if b.LineCount() != 2 || b.LineText(0) != "hello" || b.LineText(1) != " world" {
		t.Errorf("unexpected text %q", b.Text())
	}
}

func TestBufferInsertUsesLineEnding(t *testing.T) {
	b := NewBufferFromString("ab", WithCRLF())

	if _, err := b.Insert(Point{0, 1}, "\n"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Text() != "a\r\nb" {
		t.Errorf("expected CRLF text, got %q", b.Text())
	}
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	for _, p := range []Point{{0, 6}, {1, 0}, {-1, 0}, {0, -1}} {
		if _, err := b.Insert(p, "X"); !errors.Is(err, ErrPointOutOfRange) {
			t.Errorf("Insert(%s): expected ErrPointOutOfRange, got %v", p, err)
		}
	}
}

func TestBufferReplaceInvalidRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	if _, err := b.Replace(NewPointRange(Point{0, 3}, Point{0, 2}), ""); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := b.Replace(NewPointRange(Point{0, 0}, Point{0, 100}), ""); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("ab\ncd")

	if err := b.Delete(NewPointRange(Point{0, 1}, Point{1, 1})); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "ad" {
		t.Errorf("expected 'ad', got %q", b.Text())
	}
}

func TestBufferTextRange(t *testing.T) {
	b := NewBufferFromString("one\ntwo\nthree")

	got, err := b.TextRange(NewPointRange(Point{0, 1}, Point{2, 2}))
	if err != nil {
		t.Fatalf("text range failed: %v", err)
	}
	if got != "ne\ntwo\nth" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestApplyEdit(t *testing.T) {
	b := NewBufferFromString("- [x] done")

	res, err := b.ApplyEdit(NewEdit(NewPointRange(Point{0, 3}, Point{0, 4}), " "))
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if res.OldText != "x" {
		t.Errorf("expected old text 'x', got %q", res.OldText)
	}
	if res.NewRange.End != (Point{0, 4}) {
		t.Errorf("unexpected new range %s", res.NewRange)
	}
}

func TestClampPoint(t *testing.T) {
	b := NewBufferFromString("abc\nde")

	tests := []struct {
		in, want Point
	}{
		{Point{0, 1}, Point{0, 1}},
		{Point{0, 10}, Point{0, 3}},
		{Point{5, 0}, Point{1, 2}},
		{Point{-1, 4}, Point{0, 0}},
		{Point{1, -3}, Point{1, 0}},
	}
	for _, tt := range tests {
		if got := b.ClampPoint(tt.in); got != tt.want {
			t.Errorf("ClampPoint(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMarkSaved(t *testing.T) {
	b := NewBufferFromString("x")
	b.SetText("y")
	if !b.Modified() {
		t.Fatal("expected modified")
	}
	b.MarkSaved()
	if b.Modified() {
		t.Error("expected not modified after MarkSaved")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("a\nb")
	snap := b.Snapshot()

	b.SetText("changed")

	if snap.LineCount() != 2 || snap.LineText(1) != "b" {
		t.Errorf("snapshot changed: %q", snap.Text())
	}
	if snap.RevisionID() == b.RevisionID() {
		t.Error("snapshot revision should differ after edit")
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\nb\nc\r\n", LineEndingLF},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestParseLineEnding(t *testing.T) {
	if le, ok := ParseLineEnding("CRLF"); !ok || le != LineEndingCRLF {
		t.Errorf("ParseLineEnding(CRLF) = %s, %v", le, ok)
	}
	if _, ok := ParseLineEnding("nope"); ok {
		t.Error("expected unknown line ending to fail")
	}
}

func TestConcurrentAccess(t *testing.T) {
	b := NewBufferFromString("start")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = b.Insert(Point{0, 0}, "x")
		}()
		go func() {
			defer wg.Done()
			_ = b.LineText(0)
			_ = b.Text()
		}()
	}
	wg.Wait()

	if got := b.LineLen(0); got != len("start")+10 {
		t.Errorf("expected %d bytes, got %d", len("start")+10, got)
	}
}
