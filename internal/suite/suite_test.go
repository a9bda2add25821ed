package suite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeDocs fills dir with n passing documentation files.
func writeDocs(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, fmt.Sprintf("doc-%02d.txt", i))
		content := fmt.Sprintf("Example %d:\n\n>>> %d + %d\n%d\n", i, i, i, i+i)
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write doc: %v", err)
		}
	}
}

func tempDocsDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "suite-docs")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestFromDirectory(t *testing.T) {
	t.Run("one case per discovered file", func(t *testing.T) {
		dir := tempDocsDir(t)
		writeDocs(t, dir, 4)

		s, err := FromDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 4 {
			t.Errorf("expected 4 cases, got %d", s.Len())
		}
		for i, c := range s.Cases() {
			want := fmt.Sprintf("doc-%02d.txt", i)
			if c.Name() != want {
				t.Errorf("expected case %q, got %q", want, c.Name())
			}
		}
	})

	t.Run("too few files fail before case construction", func(t *testing.T) {
		dir := tempDocsDir(t)
		writeDocs(t, dir, 3)

		s, err := FromDirectory(dir)
		if !errors.Is(err, ErrInsufficientDocuments) {
			t.Fatalf("expected ErrInsufficientDocuments, got %v", err)
		}
		if s != nil {
			t.Error("expected no suite on discovery failure")
		}
	})

	t.Run("non txt files are not discovered", func(t *testing.T) {
		dir := tempDocsDir(t)
		writeDocs(t, dir, 4)
		for _, name := range []string{"notes.md", "README", "data.json"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		}

		s, err := FromDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 4 {
			t.Errorf("expected 4 cases, got %d", s.Len())
		}
	})

	t.Run("discovery is idempotent", func(t *testing.T) {
		dir := tempDocsDir(t)
		writeDocs(t, dir, 5)

		first, err := FromDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := FromDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first.Paths(), second.Paths()) {
			t.Errorf("expected identical path sets: %v vs %v", first.Paths(), second.Paths())
		}
	})

	t.Run("construction succeeds with failing content", func(t *testing.T) {
		dir := tempDocsDir(t)
		writeDocs(t, dir, 8)
		for _, name := range []string{"broken-1.txt", "broken-2.txt"} {
			content := ">>> 1 + 1\n3\n"
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
				t.Fatalf("failed to write doc: %v", err)
			}
		}

		s, err := FromDirectory(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Len() != 10 {
			t.Fatalf("expected 10 cases, got %d", s.Len())
		}

		failed := 0
		for _, c := range s.Cases() {
			findings, err := c.Run(context.Background())
			if err != nil {
				t.Fatalf("unexpected error running %s: %v", c.Name(), err)
			}
			for _, f := range findings {
				if !f.OK {
					failed++
				}
			}
		}
		if failed != 2 {
			t.Errorf("expected 2 failing regions, got %d", failed)
		}
	})
}

func TestCaseIndependence(t *testing.T) {
	dir := tempDocsDir(t)
	// The first file defines a variable; the second would only pass if
	// interpreter state leaked between cases.
	docs := map[string]string{
		"a.txt": ">>> shared := 1\n>>> shared\n1\n",
		"b.txt": ">>> shared\nerror: ...\n",
		"c.txt": ">>> 1 + 1\n2\n",
		"d.txt": ">>> 2 + 2\n4\n",
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write doc: %v", err)
		}
	}

	s, err := FromDirectory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range s.Cases() {
		findings, err := c.Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error running %s: %v", c.Name(), err)
		}
		for _, f := range findings {
			if !f.OK {
				t.Errorf("%s line %d: unexpected failure: %+v", c.Name(), f.Line, f)
			}
		}
	}
}

func TestCaseRunRepeatable(t *testing.T) {
	dir := tempDocsDir(t)
	writeDocs(t, dir, 4)

	s, err := FromDirectory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := s.Cases()[0]
	for i := 0; i < 2; i++ {
		findings, err := c.Run(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, f := range findings {
			if !f.OK {
				t.Errorf("run %d: unexpected failure %+v", i, f)
			}
		}
	}
}

func TestDefaultEngine(t *testing.T) {
	names := DefaultEngine().Capabilities()
	want := map[string]bool{"doctest": true, "codeblock": true, "capture": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d capabilities, got %v", len(want), names)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected capability %q", n)
		}
	}
}
