package bcollect

import (
	"errors"
	"strings"
)

// AggregateError is the single error returned when a collection saw at least
// one failure. Errors holds the failures in input order.
//
// AggregateError supports errors.Is and errors.As through Unwrap, so a caller
// can still look for a specific failure among the members.
type AggregateError struct {
	Errors []error
}

// Error returns the messages of all members, one per line, with no leading
// or trailing newline.
func (a *AggregateError) Error() string {
	if len(a.Errors) == 0 {
		return "no errors"
	}
	if len(a.Errors) == 1 {
		return a.Errors[0].Error()
	}

	var b strings.Builder
	for i, err := range a.Errors {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the member errors.
func (a *AggregateError) Unwrap() []error {
	return a.Errors
}

// Len returns the number of member errors.
func (a *AggregateError) Len() int {
	return len(a.Errors)
}

// AsAggregate reports whether err is, or wraps, an *AggregateError and
// returns it.
func AsAggregate(err error) (*AggregateError, bool) {
	var agg *AggregateError
	if errors.As(err, &agg) {
		return agg, true
	}
	return nil, false
}

// combine synthesizes the aggregate for a non-empty, nil-free failure list.
func combine(errs []error) error {
	for _, err := range errs {
		if err == nil {
			panic("bcollect: nil error classified as a failure")
		}
	}
	return &AggregateError{Errors: errs}
}
