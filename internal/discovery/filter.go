package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters documentation files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters documentation files by name pattern using wildcard
// matching. Supports patterns like "*errors.txt" or "*api*"
func (f *Filter) FilterByName(docs []string, pattern string) []string {
	if pattern == "" {
		return docs
	}

	var filtered []string

	for _, doc := range docs {
		// Match against just the filename, not the full path
		name := filepath.Base(doc)

		// filepath.Match covers * and ? wildcards
		matched, err := filepath.Match(pattern, name)
		if err == nil && matched {
			filtered = append(filtered, doc)
			continue
		}

		// Patterns like "*api*" should also match as ordered substrings,
		// which filepath.Match alone would miss for names with extra
		// separators.
		if strings.Contains(pattern, "*") {
			if matchesParts(name, strings.Split(pattern, "*")) {
				filtered = append(filtered, doc)
			}
			continue
		}

		// No wildcards at all: plain substring match
		if !strings.Contains(pattern, "?") && strings.Contains(name, pattern) {
			filtered = append(filtered, doc)
		}
	}

	return filtered
}

// matchesParts reports whether every non-empty part appears in name, in
// order, with at least one non-empty part present.
func matchesParts(name string, parts []string) bool {
	matchedAny := false
	rest := name
	for _, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
