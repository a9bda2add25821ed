package engine

import (
	"fmt"
	"os"
	"strings"
)

// Document is one documentation file addressed by 1-based line numbers.
type Document struct {
	Path   string
	Source []byte
	lines  []string
}

// Load reads a documentation file from disk.
func Load(path string) (*Document, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return NewDocument(path, source), nil
}

// NewDocument wraps in-memory source as a document.
func NewDocument(path string, source []byte) *Document {
	raw := strings.Split(string(source), "\n")
	if len(raw) > 0 && raw[len(raw)-1] == "" {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Document{Path: path, Source: source, lines: lines}
}

// Lines returns the document's lines without trailing newlines.
func (d *Document) Lines() []string {
	return d.lines
}

// Line returns the 1-based line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}
