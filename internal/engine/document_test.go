package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir, err := os.MkdirTemp("", "engine-doc")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Path != path {
		t.Errorf("unexpected path %q", doc.Path)
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LineCount())
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewDocument(t *testing.T) {
	t.Run("lines are split and numbered from one", func(t *testing.T) {
		doc := NewDocument("d", []byte("first\nsecond\nthird"))
		if doc.LineCount() != 3 {
			t.Fatalf("expected 3 lines, got %d", doc.LineCount())
		}
		if doc.Line(1) != "first" || doc.Line(3) != "third" {
			t.Errorf("unexpected lines %q, %q", doc.Line(1), doc.Line(3))
		}
	})

	t.Run("trailing newline adds no line", func(t *testing.T) {
		if n := NewDocument("d", []byte("a\nb\n")).LineCount(); n != 2 {
			t.Errorf("expected 2 lines, got %d", n)
		}
	})

	t.Run("carriage returns are stripped", func(t *testing.T) {
		doc := NewDocument("d", []byte("a\r\nb\r\n"))
		if doc.Line(1) != "a" || doc.Line(2) != "b" {
			t.Errorf("unexpected lines %q, %q", doc.Line(1), doc.Line(2))
		}
	})

	t.Run("out of range lines are empty", func(t *testing.T) {
		doc := NewDocument("d", []byte("a\n"))
		if doc.Line(0) != "" || doc.Line(2) != "" {
			t.Error("expected empty strings outside the range")
		}
	})
}
