package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	lines := []string{"alpha", "beta", "", "gamma"}

	if err := Save(path, lines, LineEndingLF); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(doc.Lines) != len(lines) {
		t.Fatalf("expected %d lines, got %d", len(lines), len(doc.Lines))
	}
	for i := range lines {
		if doc.Lines[i] != lines[i] {
			t.Errorf("line %d: expected %q, got %q", i, lines[i], doc.Lines[i])
		}
	}
	if doc.Ending != LineEndingLF {
		t.Errorf("expected LF, got %v", doc.Ending)
	}
}

func TestRoundTripCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	lines := []string{"one", "two"}

	if err := Save(path, lines, LineEndingCRLF); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "one\r\ntwo\r\n" {
		t.Errorf("unexpected file content %q", data)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Ending != LineEndingCRLF {
		t.Errorf("expected CRLF detected, got %v", doc.Ending)
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != "one" || doc.Lines[1] != "two" {
		t.Errorf("unexpected lines %v", doc.Lines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadNoTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("a\nb"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Lines) != 2 || doc.Lines[0] != "a" || doc.Lines[1] != "b" {
		t.Errorf("unexpected lines %v", doc.Lines)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Lines) != 0 {
		t.Errorf("expected no lines, got %v", doc.Lines)
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"no newline", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\r\nb\n", LineEndingLF}, // mixed falls back to LF
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q): expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestStoreAdoptsLoadedEnding(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	if err := os.WriteFile(src, []byte("x\r\ny\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore()
	if s.Ending() != LineEndingLF {
		t.Fatalf("fresh store should default to LF")
	}

	doc, err := s.Load(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Ending() != LineEndingCRLF {
		t.Errorf("store should adopt CRLF from loaded file")
	}

	out := filepath.Join(dir, "out.txt")
	if err := s.Save(out, doc.Lines); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "x\r\ny\r\n" {
		t.Errorf("expected CRLF preserved, got %q", data)
	}
}
