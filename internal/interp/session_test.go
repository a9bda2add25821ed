package interp

import (
	"context"
	"testing"
)

func TestSessionEval(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		out, err := s.Eval(ctx, `fmt.Println("hello")`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "hello\n" {
			t.Errorf("expected %q, got %q", "hello\n", out)
		}
	})

	t.Run("state persists across evaluations", func(t *testing.T) {
		if _, err := s.Eval(ctx, `greeting := "hi"`); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, rendered, err := s.EvalValue(ctx, "greeting")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Errorf("expected no stdout, got %q", out)
		}
		if rendered != "hi\n" {
			t.Errorf("expected rendered %q, got %q", "hi\n", rendered)
		}
	})

	t.Run("evaluation error is returned", func(t *testing.T) {
		_, err := s.Eval(ctx, "no_such_symbol")
		if err == nil {
			t.Fatal("expected an error for undefined symbol")
		}
	})
}

func TestSessionEvalValue(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	ctx := context.Background()

	out, rendered, err := s.EvalValue(ctx, "21 * 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected no stdout, got %q", out)
	}
	if rendered != "42\n" {
		t.Errorf("expected %q, got %q", "42\n", rendered)
	}

	// Prelude packages are available without an import.
	_, rendered, err = s.EvalValue(ctx, `strings.ToUpper("abc")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rendered != "ABC\n" {
		t.Errorf("expected %q, got %q", "ABC\n", rendered)
	}
}

func TestSessionEvalValueVoidCall(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	ctx := context.Background()

	if _, err := s.Eval(ctx, "xs := []int{3, 1, 2}"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// sort.Ints has no results, so there is nothing to render; the call
	// must still run.
	out, rendered, err := s.EvalValue(ctx, "sort.Ints(xs)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" || rendered != "" {
		t.Errorf("expected silent call, got output %q rendered %q", out, rendered)
	}

	_, rendered, err = s.EvalValue(ctx, "xs[0]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rendered != "1\n" {
		t.Errorf("expected %q, got %q", "1\n", rendered)
	}
}

func TestSessionEvalValuePanic(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	_, _, err = s.EvalValue(context.Background(), `func() int { panic("boom") }()`)
	if err == nil {
		t.Fatal("expected an error from a panicking expression")
	}
}

func TestSessionBind(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	ctx := context.Background()

	text := "line one\nline two\n"
	if err := s.Bind(ctx, "payload", text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, rendered, err := s.EvalValue(ctx, "strings.Count(payload, \"line\")")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rendered != "2\n" {
		t.Errorf("expected %q, got %q", "2\n", rendered)
	}

	if err := s.Bind(ctx, "9bad", "x"); err == nil {
		t.Error("expected an error for invalid identifier")
	}
	if err := s.Bind(ctx, "has-dash", "x"); err == nil {
		t.Error("expected an error for invalid identifier")
	}
}

func TestSessionLastOutput(t *testing.T) {
	s, err := NewSession()
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	ctx := context.Background()

	if _, ok := s.LastOutput(); ok {
		t.Fatal("expected no recorded output before any evaluation")
	}

	if _, err := s.Eval(ctx, `fmt.Print("first")`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok := s.LastOutput()
	if !ok || out != "first" {
		t.Errorf("expected recorded output %q, got %q (ok=%v)", "first", out, ok)
	}

	// A later evaluation replaces the recorded output, even when silent.
	if _, err := s.Eval(ctx, "n := 1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok = s.LastOutput()
	if !ok || out != "" {
		t.Errorf("expected empty recorded output, got %q (ok=%v)", out, ok)
	}
}
