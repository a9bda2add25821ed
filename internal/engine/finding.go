package engine

// Finding is the outcome of checking a single region.
type Finding struct {
	Kind     string // capability that owns the region
	Line     int    // first line of the region
	OK       bool
	Source   string // evaluated source, if any
	Expected string // expected output, if the region asserts one
	Got      string // produced output, if the region asserts one
	Diff     string // rendered line diff, when available
	Message  string // human explanation for non-comparison failures
}

// Pass builds a passing finding for a region.
func Pass(kind string, line int, source string) Finding {
	return Finding{Kind: kind, Line: line, OK: true, Source: source}
}

// Fail builds a failing finding with a message.
func Fail(kind string, line int, source, message string) Finding {
	return Finding{Kind: kind, Line: line, Source: source, Message: message}
}
