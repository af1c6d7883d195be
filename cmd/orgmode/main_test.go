package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const doc = "Tasks [/]\n  - [ ] write\n  - [x] test\n"

func setup(t *testing.T) (file, cfg string) {
	t.Helper()
	dir := t.TempDir()
	file = filepath.Join(dir, "todo.org")
	if err := os.WriteFile(file, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return file, filepath.Join(dir, "missing.toml")
}

func TestRunVersion(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run([]string{"-version"}, &out, &errb); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out.String(), "orgmode dev") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunHelp(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run([]string{"-h"}, &out, &errb); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(errb.String(), "Usage: orgmode") {
		t.Errorf("usage = %q", errb.String())
	}
}

func TestRunBadFlags(t *testing.T) {
	tests := [][]string{
		{"-nope"},
		{"-log-level", "loud", "x.org"},
		{"-w", "x.org"},
		{"-o", "out.org", "x.org"},
		{"-at", "2:6", "-w", "-o", "out.org", "x.org"},
		{"a.org", "b.org"},
		{"-at", "2:6"},
		{"-at", "two", "x.org"},
	}
	for _, args := range tests {
		var out, errb bytes.Buffer
		if code := run(args, &out, &errb); code != 2 {
			t.Errorf("run(%v) = %d, want 2 (stderr %q)", args, code, errb.String())
		}
	}
}

func TestRunBatchPrints(t *testing.T) {
	file, cfg := setup(t)

	var out, errb bytes.Buffer
	code := run([]string{"-config", cfg, "-at", "1:8", file}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errb.String())
	}
	if out.String() != "Tasks [1/2]\n  - [ ] write\n  - [x] test\n" {
		t.Errorf("output = %q", out.String())
	}

	data, _ := os.ReadFile(file)
	if string(data) != doc {
		t.Error("file changed without -w")
	}
}

func TestRunBatchWrite(t *testing.T) {
	file, cfg := setup(t)

	var out, errb bytes.Buffer
	code := run([]string{"-config", cfg, "-at", "2:6", "-w", file}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errb.String())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Tasks [/]\n  - [X] write\n  - [x] test\n" {
		t.Errorf("file = %q", data)
	}
}

func TestRunBatchOutput(t *testing.T) {
	file, cfg := setup(t)
	target := filepath.Join(t.TempDir(), "done.org")

	var out, errb bytes.Buffer
	code := run([]string{"-config", cfg, "-at", "2:6", "-o", target, file}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errb.String())
	}
	if out.Len() != 0 {
		t.Errorf("unexpected stdout %q", out.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Tasks [/]\n  - [X] write\n  - [x] test\n" {
		t.Errorf("output file = %q", data)
	}
	if src, _ := os.ReadFile(file); string(src) != doc {
		t.Error("source file changed with -o")
	}
}

func TestRunBatchExpand(t *testing.T) {
	file, cfg := setup(t)

	var out, errb bytes.Buffer
	code := run([]string{"-config", cfg, "-at", "2:6", "-action", "expand", file}, &out, &errb)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errb.String())
	}
	if out.String() != doc {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunBatchOutOfRange(t *testing.T) {
	file, cfg := setup(t)

	var out, errb bytes.Buffer
	if code := run([]string{"-config", cfg, "-at", "40:1", file}, &out, &errb); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errb.String(), "invalid position") {
		t.Errorf("stderr = %q", errb.String())
	}
}
