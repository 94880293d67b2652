// Package directive splits line-oriented asset formats such as OBJ and MTL
// into verb/argument pairs and reports failures with their line number.
package directive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrComponentCount is returned when a directive has the wrong number of
// numeric components.
var ErrComponentCount = errors.New("wrong number of components")

// Directive is a single trimmed, non-blank line of input.
type Directive struct {
	Line int    // 1-based line number
	Verb string // first whitespace-delimited token
	Args string // remainder of the line, trimmed
}

// ParseError reports the line at which parsing failed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Split separates a trimmed line into its verb and trimmed arguments
func Split(line string) (verb, args string) {
	line = strings.TrimSpace(line)
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// Scan calls fn for every non-blank line of text, in order. Lines are
// separated by '\n'; surrounding whitespace (including '\r') is trimmed.
// An error from fn stops the scan and is returned as a *ParseError.
// On success Scan returns the number of lines in text.
func Scan(text string, fn func(Directive) error) (int, error) {
	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		verb, args := Split(raw)
		if verb == "" {
			continue
		}
		if err := fn(Directive{Line: i + 1, Verb: verb, Args: args}); err != nil {
			return i + 1, &ParseError{Line: i + 1, Err: err}
		}
	}
	return len(lines), nil
}

// Floats parses the whitespace-separated arguments as float32 values.
// With exact set, exactly n values are required; otherwise at least n are
// required and only the first n are parsed.
func Floats(args string, n int, exact bool) ([]float32, error) {
	fields := strings.Fields(args)
	if len(fields) < n || (exact && len(fields) != n) {
		return nil, fmt.Errorf("%w: expected %s%d, got %d", ErrComponentCount, atLeast(exact), n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func atLeast(exact bool) string {
	if exact {
		return ""
	}
	return "at least "
}
