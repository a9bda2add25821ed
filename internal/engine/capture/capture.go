// Package capture handles documentation directives that move text in and
// out of the evaluation session.
//
//	.. -> NAME
//
// binds the indented block immediately above the directive to the
// variable NAME, and
//
//	.. output::
//
// compares the indented block below the directive against the output of
// the most recent evaluation.
package capture

import (
	"context"
	"regexp"
	"strings"

	"dtp/internal/diff"
	"dtp/internal/engine"
	"dtp/internal/interp"
)

// Name identifies findings produced by this capability.
const Name = "capture"

var (
	bindDirective   = regexp.MustCompile(`^([ \t]*)\.\.\s*->\s*([A-Za-z_]\w*)\s*$`)
	outputDirective = regexp.MustCompile(`^([ \t]*)\.\. output::\s*$`)
)

// Capability parses capture and output directives.
type Capability struct{}

// New creates the capability.
func New() *Capability { return &Capability{} }

// Name implements engine.Capability.
func (c *Capability) Name() string { return Name }

// Parse implements engine.Capability.
func (c *Capability) Parse(doc *engine.Document) ([]engine.Region, error) {
	var regions []engine.Region
	lines := doc.Lines()

	for i, line := range lines {
		if m := bindDirective.FindStringSubmatch(line); m != nil {
			regions = append(regions, newBind(lines, i, len(m[1]), m[2]))
			continue
		}
		if m := outputDirective.FindStringSubmatch(line); m != nil {
			regions = append(regions, newOutput(lines, i, len(m[1])))
		}
	}
	return regions, nil
}

// newBind builds a bind region for the directive at index i. The captured
// text is the contiguous block above the directive whose lines are blank
// or indented deeper than the directive itself.
func newBind(lines []string, i, width int, name string) engine.Region {
	b := &bind{line: i + 1, name: name}
	start := i
	for start > 0 {
		prev := lines[start-1]
		if strings.TrimSpace(prev) != "" && indent(prev) <= width {
			break
		}
		start--
	}
	b.text = dedent(trimBlank(lines[start:i]))
	return b
}

// newOutput builds an output region for the directive at index i. The
// expectation is the block below the directive, and the region covers it.
func newOutput(lines []string, i, width int) engine.Region {
	o := &output{line: i + 1, end: i + 1}
	end := i + 1
	for end < len(lines) {
		next := lines[end]
		if strings.TrimSpace(next) != "" && indent(next) <= width {
			break
		}
		end++
	}
	// Trailing blank lines belong to the prose, not the expectation.
	for end > i+1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	o.want = dedent(trimBlank(lines[i+1 : end]))
	if end > i+1 {
		o.end = end
	}
	return o
}

func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// dedent strips the smallest indentation shared by all non-blank lines
// and joins them, with a trailing newline when the block is non-empty.
func dedent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	width := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if w := indent(line); width == -1 || w < width {
			width = w
		}
	}
	if width < 0 {
		width = 0
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= width {
			out[i] = line[width:]
		}
	}
	return strings.Join(out, "\n") + "\n"
}

// bind stores a block of documentation text in the session.
type bind struct {
	line int
	name string
	text string
}

func (b *bind) Span() (int, int) { return b.line, b.line }
func (b *bind) Kind() string     { return Name }

func (b *bind) Check(ctx context.Context, sess *interp.Session) engine.Finding {
	if b.text == "" {
		return engine.Fail(Name, b.line, ".. -> "+b.name, "no preceding block to capture")
	}
	if err := sess.Bind(ctx, b.name, b.text); err != nil {
		return engine.Fail(Name, b.line, ".. -> "+b.name, "capture failed: "+err.Error())
	}
	return engine.Pass(Name, b.line, ".. -> "+b.name)
}

// output compares recorded evaluation output with an expected block.
type output struct {
	line int
	end  int
	want string
}

func (o *output) Span() (int, int) { return o.line, o.end }
func (o *output) Kind() string     { return Name }

func (o *output) Check(ctx context.Context, sess *interp.Session) engine.Finding {
	got, ok := sess.LastOutput()
	if !ok {
		return engine.Fail(Name, o.line, ".. output::", "no recorded output to compare")
	}
	if strings.TrimRight(o.want, "\n") == strings.TrimRight(got, "\n") {
		return engine.Pass(Name, o.line, ".. output::")
	}
	return engine.Finding{
		Kind:     Name,
		Line:     o.line,
		Source:   ".. output::",
		Expected: o.want,
		Got:      got,
		Diff:     diff.Lines(o.want, got),
	}
}
