package doctest

import (
	"regexp"
	"strings"
)

const ellipsisMarker = "..."

// match compares expected and actual output. Trailing whitespace on each
// line and trailing blank lines never count as a difference. With
// ellipsis enabled, "..." in the expectation matches any run of text.
func match(want, got string, ellipsis bool) bool {
	w, g := normalize(want), normalize(got)
	if w == g {
		return true
	}
	if !ellipsis || !strings.Contains(w, ellipsisMarker) {
		return false
	}
	return ellipsisRegexp(w).MatchString(g)
}

func normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// ellipsisRegexp turns an expectation into an anchored pattern where each
// "..." matches anything, newlines included.
func ellipsisRegexp(want string) *regexp.Regexp {
	parts := strings.Split(want, ellipsisMarker)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile(`(?s)\A` + strings.Join(parts, `.*`) + `\z`)
}
