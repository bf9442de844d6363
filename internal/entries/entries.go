// Package entries reads and validates key=value lines.
package entries

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/bcollect"
)

// Line is a significant input line and its 1-based line number.
type Line struct {
	Number int
	Text   string
}

// ReadLines reads every non-blank, non-comment line from r. Surrounding
// whitespace is trimmed; lines whose first non-space character is '#' are
// comments.
func ReadLines(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, Line{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// EntryError reports why a line was rejected.
type EntryError struct {
	Line int
	// Key is empty when the line could not be split into key and value.
	Key string
	Err error
}

func (e *EntryError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: key %q: %v", e.Line, e.Key, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// ErrMissingSeparator is the cause of an EntryError for lines without '='.
var ErrMissingSeparator = fmt.Errorf("missing %q separator", "=")

// Validator parses lines and checks them against a set of rules.
type Validator struct {
	Rules []Rule
}

// NewValidator returns a Validator applying rules in order.
func NewValidator(rules ...Rule) *Validator {
	return &Validator{Rules: rules}
}

// Check parses line as key=value and applies every rule. Only the first rule
// that rejects the entry is reported.
func (v *Validator) Check(ctx context.Context, line Line) (bcollect.Pair[string, string], error) {
	key, value, ok := strings.Cut(line.Text, "=")
	if !ok {
		return bcollect.Pair[string, string]{}, &EntryError{Line: line.Number, Err: ErrMissingSeparator}
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)

	for _, rule := range v.Rules {
		if err := ctx.Err(); err != nil {
			return bcollect.Pair[string, string]{}, &EntryError{Line: line.Number, Key: key, Err: err}
		}
		if err := rule.Check(key, value); err != nil {
			return bcollect.Pair[string, string]{}, &EntryError{Line: line.Number, Key: key, Err: err}
		}
	}
	return bcollect.KV(key, value), nil
}
