package interp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// prelude is evaluated once per session so short examples can use the
// common standard library packages without import ceremony. Documents
// that need more can import it themselves inside a code block.
const prelude = `import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)`

// Session is one embedded Go interpreter bound to a single document.
// It is not safe for concurrent use; the engine creates one session per
// document and evaluates regions sequentially.
type Session struct {
	interp     *interp.Interpreter
	stdout     *bytes.Buffer
	lastOutput string
	hasOutput  bool
}

// NewSession creates a fresh interpreter with the standard library
// loaded and the prelude imported.
func NewSession() (*Session, error) {
	buf := &bytes.Buffer{}
	i := interp.New(interp.Options{
		Stdout: buf,
		Stderr: buf,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load interpreter stdlib: %w", err)
	}
	s := &Session{interp: i, stdout: buf}
	if _, err := i.Eval(prelude); err != nil {
		return nil, fmt.Errorf("evaluate session prelude: %w", err)
	}
	s.stdout.Reset()
	return s, nil
}

// Eval evaluates src in the session and returns everything it wrote to
// stdout/stderr. The captured output is recorded as the session's last
// output whether or not evaluation succeeded.
func (s *Session) Eval(ctx context.Context, src string) (string, error) {
	s.stdout.Reset()
	_, err := s.interp.EvalWithContext(ctx, src)
	out := s.stdout.String()
	s.lastOutput = out
	s.hasOutput = true
	return out, err
}

// EvalValue evaluates src as a single expression and returns the
// fmt.Sprintln rendering of its value, alongside any stdout the
// evaluation produced. Only the stdout part is recorded as last output;
// the rendering is presentation, not a side effect.
//
// Calls to functions without results cannot be rendered: the wrapper
// fails to compile before anything runs, so src is re-evaluated as a
// plain statement with no rendering.
func (s *Session) EvalValue(ctx context.Context, src string) (output, rendered string, err error) {
	s.stdout.Reset()
	v, err := s.interp.EvalWithContext(ctx, "fmt.Sprintln("+src+"\n)")
	out := s.stdout.String()
	s.lastOutput = out
	s.hasOutput = true
	if err != nil {
		var p interp.Panic
		if errors.As(err, &p) {
			return out, "", err
		}
		out, err = s.Eval(ctx, src)
		return out, "", err
	}
	if v.IsValid() && v.CanInterface() {
		if str, ok := v.Interface().(string); ok {
			rendered = str
		}
	}
	return out, rendered, nil
}

// Bind defines name as a string variable holding text.
func (s *Session) Bind(ctx context.Context, name, text string) error {
	if !validIdent(name) {
		return fmt.Errorf("invalid capture name %q", name)
	}
	_, err := s.interp.EvalWithContext(ctx, name+" := "+strconv.Quote(text))
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	return nil
}

// LastOutput returns the stdout captured by the most recent evaluation
// and whether any evaluation has happened yet.
func (s *Session) LastOutput() (string, bool) {
	return s.lastOutput, s.hasOutput
}

func validIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
