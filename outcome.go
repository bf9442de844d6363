package bcollect

import "iter"

// Outcome is the result of one fallible computation: a value when Err is nil,
// a failure otherwise.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok returns a successful outcome holding v.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Fail returns a failed outcome. A nil err yields a successful outcome with
// the zero value of T.
func Fail[T any](err error) Outcome[T] {
	return Outcome[T]{Err: err}
}

// From wraps the (value, error) pair returned by a Go function.
func From[T any](v T, err error) Outcome[T] {
	return Outcome[T]{Value: v, Err: err}
}

// IsOk reports whether the outcome is a success.
func (o Outcome[T]) IsOk() bool { return o.Err == nil }

// Get unpacks the outcome back into a (value, error) pair.
func (o Outcome[T]) Get() (T, error) { return o.Value, o.Err }

// Outcomes adapts a sequence whose failures are not Go errors. toErr converts
// each failure to an error; returning nil classifies the element as a
// success.
func Outcomes[T, E any](seq iter.Seq2[T, E], toErr func(E) error) iter.Seq[Outcome[T]] {
	return func(yield func(Outcome[T]) bool) {
		for v, e := range seq {
			if !yield(Outcome[T]{Value: v, Err: toErr(e)}) {
				return
			}
		}
	}
}

// Apply lazily maps every input through fn.
func Apply[I, O any](inputs []I, fn func(I) (O, error)) iter.Seq[Outcome[O]] {
	return func(yield func(Outcome[O]) bool) {
		for _, in := range inputs {
			v, err := fn(in)
			if !yield(From(v, err)) {
				return
			}
		}
	}
}
