// Package suite turns a directory of documentation files into runnable
// test cases. Discovery globs doc files, refuses to proceed when too few
// are found, and wraps each file as one independent case checked by a
// shared engine configuration.
package suite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"dtp/internal/engine"
	"dtp/internal/engine/capture"
	"dtp/internal/engine/codeblock"
	"dtp/internal/engine/doctest"
)

// MinimumDocumentCount is the smallest number of documentation files a
// deployment is expected to carry. Finding fewer almost always means the
// docs directory was misresolved, so discovery refuses to return a
// near-empty suite instead of passing vacuously.
const MinimumDocumentCount = 4

// ErrInsufficientDocuments reports a discovery that found fewer than
// MinimumDocumentCount files.
var ErrInsufficientDocuments = errors.New("insufficient documentation files")

// DefaultEngine builds the standard engine configuration: interpreter
// examples with ellipsis matching and diff reporting, fenced go code
// blocks, and capture directives.
func DefaultEngine() *engine.Engine {
	return engine.Combine(
		doctest.New(doctest.WithEllipsis(true), doctest.WithNDiff(true)),
		codeblock.New(),
		capture.New(),
	)
}

// Discover lists the documentation files under dir, sorted by path.
func Discover(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob documentation files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// FromDirectory discovers the files under dir and builds a suite with
// the default engine. It fails with ErrInsufficientDocuments before any
// case is constructed when fewer than MinimumDocumentCount files exist.
func FromDirectory(dir string) (*Suite, error) {
	paths, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) < MinimumDocumentCount {
		return nil, fmt.Errorf("%w: found %d files under %s, expected at least %d",
			ErrInsufficientDocuments, len(paths), dir, MinimumDocumentCount)
	}
	return New(DefaultEngine(), paths), nil
}

// DiscoverTests builds the suite for this repository's own docs
// directory, two levels above this package.
func DiscoverTests() (*Suite, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("cannot resolve package location")
	}
	root := filepath.Dir(filepath.Dir(filepath.Dir(file)))
	return FromDirectory(filepath.Join(root, "docs"))
}

// Suite is an ordered set of independent documentation cases.
type Suite struct {
	engine *engine.Engine
	cases  []*Case
}

// New wraps each path as one case checked by e.
func New(e *engine.Engine, paths []string) *Suite {
	s := &Suite{engine: e}
	for _, p := range paths {
		s.cases = append(s.cases, &Case{engine: e, Path: p})
	}
	return s
}

// Cases returns the suite's cases in discovery order.
func (s *Suite) Cases() []*Case {
	return s.cases
}

// Len returns the number of cases.
func (s *Suite) Len() int {
	return len(s.cases)
}

// Paths returns the documentation file behind each case.
func (s *Suite) Paths() []string {
	paths := make([]string, len(s.cases))
	for i, c := range s.cases {
		paths[i] = c.Path
	}
	return paths
}

// Case checks a single documentation file. Cases never share state: each
// run loads the file and evaluates it in a fresh interpreter session.
type Case struct {
	engine *engine.Engine
	Path   string
}

// Name returns the case's display name.
func (c *Case) Name() string {
	return filepath.Base(c.Path)
}

// Run loads the document and checks every region. Failed regions are
// returned as findings; the error reports files that could not be
// checked at all.
func (c *Case) Run(ctx context.Context) ([]engine.Finding, error) {
	doc, err := engine.Load(c.Path)
	if err != nil {
		return nil, err
	}
	return c.engine.Evaluate(ctx, doc)
}
