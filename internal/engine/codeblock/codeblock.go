// Package codeblock executes fenced code blocks found in documentation.
// Only blocks whose info string names the go language are run; a block
// passes when it evaluates without an error.
package codeblock

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"dtp/internal/engine"
	"dtp/internal/interp"
)

// Name identifies findings produced by this capability.
const Name = "codeblock"

// language is the fence info string that marks an executable block.
const language = "go"

// Capability extracts and runs fenced code blocks.
type Capability struct{}

// New creates the capability.
func New() *Capability { return &Capability{} }

// Name implements engine.Capability.
func (c *Capability) Name() string { return Name }

// Parse implements engine.Capability. The document is parsed as Markdown
// and every fenced block tagged "go" becomes a region spanning the
// opening and closing fence lines. Blocks without code are skipped.
func (c *Capability) Parse(doc *engine.Document) ([]engine.Region, error) {
	source := doc.Source
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var regions []engine.Region
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		block, ok := n.(*gmast.FencedCodeBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}
		if string(block.Language(source)) != language {
			return gmast.WalkContinue, nil
		}
		lines := block.Lines()
		if lines.Len() == 0 {
			return gmast.WalkContinue, nil
		}

		var code bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			code.Write(seg.Value(source))
		}

		first := lineAt(source, lines.At(0).Start)
		last := lineAt(source, lines.At(lines.Len()-1).Start)
		end := last + 1 // closing fence
		if end > doc.LineCount() {
			end = doc.LineCount()
		}
		regions = append(regions, &fence{
			start: first - 1, // opening fence
			end:   end,
			code:  strings.TrimRight(code.String(), "\n"),
		})
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return regions, nil
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(source []byte, offset int) int {
	return 1 + bytes.Count(source[:offset], []byte{'\n'})
}

type fence struct {
	start int
	end   int
	code  string
}

func (b *fence) Span() (int, int) { return b.start, b.end }
func (b *fence) Kind() string     { return Name }

func (b *fence) Check(ctx context.Context, sess *interp.Session) engine.Finding {
	out, err := sess.Eval(ctx, b.code)
	if err != nil {
		f := engine.Fail(Name, b.start, b.code, "evaluation error: "+err.Error())
		f.Got = out
		return f
	}
	return engine.Pass(Name, b.start, b.code)
}
