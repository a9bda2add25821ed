// Package doctest checks interpreter-session examples embedded in
// documentation: a ">>> " prompt line (optionally continued with
// "... ") followed by the output the evaluation is expected to produce.
package doctest

import (
	"context"
	"go/parser"
	"strings"

	"dtp/internal/diff"
	"dtp/internal/engine"
	"dtp/internal/interp"
)

const (
	// Name identifies findings produced by this capability.
	Name = "doctest"

	ps1 = ">>>"
	ps2 = "..."
)

// Option configures the capability.
type Option func(*Capability)

// WithEllipsis makes "..." in expected output match any text, including
// across line boundaries.
func WithEllipsis(on bool) Option {
	return func(c *Capability) { c.ellipsis = on }
}

// WithNDiff attaches a line diff to mismatch findings instead of leaving
// only the expected/got pair.
func WithNDiff(on bool) Option {
	return func(c *Capability) { c.ndiff = on }
}

// Capability parses and checks session examples.
type Capability struct {
	ellipsis bool
	ndiff    bool
}

// New creates the capability. Both options default to off.
func New(opts ...Option) *Capability {
	c := &Capability{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements engine.Capability.
func (c *Capability) Name() string { return Name }

// Parse implements engine.Capability. Examples keep the indentation of
// their prompt: continuation and expected-output lines must carry the
// same prefix, and the example ends at a blank line, a dedent, the next
// prompt, or the end of the document.
func (c *Capability) Parse(doc *engine.Document) ([]engine.Region, error) {
	var regions []engine.Region
	lines := doc.Lines()

	for i := 0; i < len(lines); {
		indent, rest, ok := splitPrompt(lines[i], ps1)
		if !ok {
			i++
			continue
		}

		ex := &example{cap: c, start: i + 1, source: rest}
		j := i + 1

		// Continuation lines extend the source.
		for j < len(lines) {
			_, cont, ok := splitPromptAt(lines[j], indent, ps2)
			if !ok {
				break
			}
			ex.source += "\n" + cont
			j++
		}

		// Everything until a blank line, dedent or next prompt is the
		// expected output.
		var want []string
		for j < len(lines) {
			line := lines[j]
			if strings.TrimSpace(line) == "" {
				break
			}
			if !strings.HasPrefix(line, indent) {
				break
			}
			body := line[len(indent):]
			if strings.HasPrefix(body, ps1) {
				break
			}
			want = append(want, body)
			j++
		}
		ex.end = j
		if len(want) > 0 {
			ex.want = strings.Join(want, "\n") + "\n"
		}
		if strings.TrimSpace(ex.source) == "" {
			ex.parseErr = "empty example source"
		}

		regions = append(regions, ex)
		i = j
	}
	return regions, nil
}

// splitPrompt splits a line into leading whitespace and the text after
// the prompt marker. The marker must be the first non-blank text and be
// followed by a space or the end of the line.
func splitPrompt(line, marker string) (indent, rest string, ok bool) {
	stripped := strings.TrimLeft(line, " \t")
	indent = line[:len(line)-len(stripped)]
	rest, ok = cutPrompt(stripped, marker)
	return indent, rest, ok
}

// splitPromptAt is splitPrompt with a fixed, already-known indentation.
func splitPromptAt(line, indent, marker string) (string, string, bool) {
	if !strings.HasPrefix(line, indent) {
		return "", "", false
	}
	rest, ok := cutPrompt(line[len(indent):], marker)
	return indent, rest, ok
}

func cutPrompt(s, marker string) (string, bool) {
	if s == marker {
		return "", true
	}
	if strings.HasPrefix(s, marker+" ") {
		return s[len(marker)+1:], true
	}
	return "", false
}

// example is one prompt/expected-output pair.
type example struct {
	cap      *Capability
	start    int
	end      int
	source   string
	want     string
	parseErr string
}

func (e *example) Span() (int, int) { return e.start, e.end }
func (e *example) Kind() string     { return Name }

func (e *example) Check(ctx context.Context, sess *interp.Session) engine.Finding {
	if e.parseErr != "" {
		return engine.Fail(Name, e.start, e.source, e.parseErr)
	}

	var got string
	var evalErr error
	if isExpression(e.source) {
		out, rendered, err := sess.EvalValue(ctx, e.source)
		got, evalErr = out+rendered, err
	} else {
		got, evalErr = sess.Eval(ctx, e.source)
	}
	if evalErr != nil {
		got += "error: " + evalErr.Error() + "\n"
	}

	if match(e.want, got, e.cap.ellipsis) {
		return engine.Pass(Name, e.start, e.source)
	}

	f := engine.Finding{
		Kind:     Name,
		Line:     e.start,
		Source:   e.source,
		Expected: e.want,
		Got:      got,
	}
	if evalErr != nil {
		f.Message = "evaluation error: " + evalErr.Error()
	}
	if e.cap.ndiff {
		f.Diff = diff.Lines(e.want, got)
	}
	return f
}

// isExpression reports whether src is a single Go expression, i.e. an
// example whose value should be echoed.
func isExpression(src string) bool {
	_, err := parser.ParseExpr(src)
	return err == nil
}
