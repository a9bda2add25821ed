// Package diff renders line-oriented diffs between expected and actual
// text using the sergi/go-diff engine.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Lines computes a line diff between expected and actual and renders it
// with "- " markers for expected-only lines, "+ " for actual-only lines
// and "  " for common ones. Both inputs are treated as newline-separated
// text; a missing trailing newline does not produce a phantom line.
func Lines(expected, actual string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(ensureTrailingNewline(expected), ensureTrailingNewline(actual))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
