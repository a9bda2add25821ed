// Package engine evaluates the executable regions embedded in
// documentation files. An Engine is an explicit aggregation of
// independent capabilities; each capability contributes regions
// (interpreter examples, fenced code blocks, capture directives) and the
// engine checks them in document order against one interpreter session
// per document.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"dtp/internal/interp"
)

// ErrOverlappingRegions reports two capabilities claiming the same lines
// of a document.
var ErrOverlappingRegions = errors.New("overlapping regions")

// Region is a contiguous line span owned by one capability.
type Region interface {
	// Span returns the 1-based inclusive line range of the region.
	Span() (start, end int)
	// Kind names the capability that produced the region.
	Kind() string
	// Check evaluates the region against the document's session.
	Check(ctx context.Context, sess *interp.Session) Finding
}

// Capability parses a document for the regions it knows how to check.
type Capability interface {
	Name() string
	Parse(doc *Document) ([]Region, error)
}

// Engine aggregates capabilities. The zero value is unusable; build one
// with Combine.
type Engine struct {
	caps []Capability
}

// Combine builds an engine from independent capabilities. Capabilities
// are additive: the order they are combined in never affects results,
// because regions always evaluate in document order.
func Combine(caps ...Capability) *Engine {
	return &Engine{caps: caps}
}

// Capabilities returns the names of the combined capabilities.
func (e *Engine) Capabilities() []string {
	names := make([]string, len(e.caps))
	for i, c := range e.caps {
		names[i] = c.Name()
	}
	return names
}

// Evaluate parses doc with every capability and checks the resulting
// regions in document order against a fresh interpreter session. Region
// failures are findings, not errors; the returned error reports only
// structural problems (overlapping regions, session construction).
func (e *Engine) Evaluate(ctx context.Context, doc *Document) ([]Finding, error) {
	regions, err := e.regions(doc)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, nil
	}

	sess, err := interp.NewSession()
	if err != nil {
		return nil, fmt.Errorf("session for %s: %w", doc.Path, err)
	}

	findings := make([]Finding, 0, len(regions))
	for _, r := range regions {
		findings = append(findings, r.Check(ctx, sess))
	}
	return findings, nil
}

// RegionInfo describes a parsed region without evaluating it.
type RegionInfo struct {
	Kind    string
	Start   int
	End     int
	Summary string
}

// Inventory parses doc and describes its regions in document order.
func (e *Engine) Inventory(doc *Document) ([]RegionInfo, error) {
	regions, err := e.regions(doc)
	if err != nil {
		return nil, err
	}
	infos := make([]RegionInfo, 0, len(regions))
	for _, r := range regions {
		start, end := r.Span()
		infos = append(infos, RegionInfo{
			Kind:    r.Kind(),
			Start:   start,
			End:     end,
			Summary: strings.TrimSpace(doc.Line(start)),
		})
	}
	return infos, nil
}

func (e *Engine) regions(doc *Document) ([]Region, error) {
	var regions []Region
	for _, c := range e.caps {
		rs, err := c.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", c.Name(), doc.Path, err)
		}
		regions = append(regions, rs...)
	}

	sort.Slice(regions, func(i, j int) bool {
		si, _ := regions[i].Span()
		sj, _ := regions[j].Span()
		return si < sj
	})

	for i := 1; i < len(regions); i++ {
		_, prevEnd := regions[i-1].Span()
		start, _ := regions[i].Span()
		if start <= prevEnd {
			return nil, fmt.Errorf("%w in %s: %s region at line %d begins inside %s region ending at line %d",
				ErrOverlappingRegions, doc.Path, regions[i].Kind(), start, regions[i-1].Kind(), prevEnd)
		}
	}
	return regions, nil
}
