package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dtp/internal/interp"
)

type fakeRegion struct {
	kind  string
	start int
	end   int
	sess  **interp.Session
}

func (r *fakeRegion) Span() (int, int) { return r.start, r.end }
func (r *fakeRegion) Kind() string     { return r.kind }

func (r *fakeRegion) Check(_ context.Context, sess *interp.Session) Finding {
	if r.sess != nil {
		*r.sess = sess
	}
	return Pass(r.kind, r.start, "")
}

type fakeCap struct {
	name    string
	regions []Region
	err     error
}

func (c *fakeCap) Name() string { return c.name }

func (c *fakeCap) Parse(*Document) ([]Region, error) {
	return c.regions, c.err
}

func TestCombine(t *testing.T) {
	e := Combine(&fakeCap{name: "a"}, &fakeCap{name: "b"})
	names := e.Capabilities()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected capabilities %v", names)
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	doc := NewDocument("doc.txt", []byte("one\ntwo\nthree\nfour\nfive\n"))

	t.Run("regions run in document order", func(t *testing.T) {
		early := &fakeCap{name: "early", regions: []Region{&fakeRegion{kind: "early", start: 2, end: 2}}}
		late := &fakeCap{name: "late", regions: []Region{&fakeRegion{kind: "late", start: 5, end: 5}}}

		for _, e := range []*Engine{Combine(late, early), Combine(early, late)} {
			findings, err := e.Evaluate(ctx, doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(findings) != 2 || findings[0].Kind != "early" || findings[1].Kind != "late" {
				t.Errorf("unexpected findings %+v", findings)
			}
		}
	})

	t.Run("overlapping regions are rejected", func(t *testing.T) {
		a := &fakeCap{name: "a", regions: []Region{&fakeRegion{kind: "a", start: 1, end: 3}}}
		b := &fakeCap{name: "b", regions: []Region{&fakeRegion{kind: "b", start: 2, end: 2}}}
		_, err := Combine(a, b).Evaluate(ctx, doc)
		if !errors.Is(err, ErrOverlappingRegions) {
			t.Fatalf("expected ErrOverlappingRegions, got %v", err)
		}
	})

	t.Run("adjacent regions are fine", func(t *testing.T) {
		a := &fakeCap{name: "a", regions: []Region{&fakeRegion{kind: "a", start: 1, end: 3}}}
		b := &fakeCap{name: "b", regions: []Region{&fakeRegion{kind: "b", start: 4, end: 5}}}
		if _, err := Combine(a, b).Evaluate(ctx, doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no regions means no findings", func(t *testing.T) {
		findings, err := Combine(&fakeCap{name: "a"}).Evaluate(ctx, doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if findings != nil {
			t.Errorf("expected no findings, got %+v", findings)
		}
	})

	t.Run("each evaluation gets its own session", func(t *testing.T) {
		var first, second *interp.Session
		e := Combine(&fakeCap{name: "a", regions: []Region{&fakeRegion{kind: "a", start: 1, end: 1, sess: &first}}})
		if _, err := e.Evaluate(ctx, doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		e2 := Combine(&fakeCap{name: "a", regions: []Region{&fakeRegion{kind: "a", start: 1, end: 1, sess: &second}}})
		if _, err := e2.Evaluate(ctx, doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first == nil || second == nil || first == second {
			t.Error("expected two distinct sessions")
		}
	})

	t.Run("parse errors name the capability", func(t *testing.T) {
		broken := &fakeCap{name: "broken", err: fmt.Errorf("boom")}
		_, err := Combine(broken).Evaluate(ctx, doc)
		if err == nil || !errors.Is(err, broken.err) {
			t.Fatalf("expected wrapped parse error, got %v", err)
		}
	})
}

func TestInventory(t *testing.T) {
	doc := NewDocument("doc.txt", []byte("  alpha\nbeta\ngamma\n"))
	a := &fakeCap{name: "a", regions: []Region{&fakeRegion{kind: "a", start: 3, end: 3}}}
	b := &fakeCap{name: "b", regions: []Region{&fakeRegion{kind: "b", start: 1, end: 2}}}

	infos, err := Combine(a, b).Inventory(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(infos))
	}
	if infos[0].Kind != "b" || infos[0].Start != 1 || infos[0].End != 2 || infos[0].Summary != "alpha" {
		t.Errorf("unexpected first info %+v", infos[0])
	}
	if infos[1].Kind != "a" || infos[1].Summary != "gamma" {
		t.Errorf("unexpected second info %+v", infos[1])
	}
}
