package bcollect

import (
	"iter"
	"slices"
)

// Collect consumes seq completely and returns either the container built from
// every success value or a single *AggregateError describing every failure.
//
// Unlike a fail-fast loop, Collect keeps reading after the first failure so
// that the returned error lists all of them. When at least one failure is
// seen, build is not called and the zero value of C is returned.
func Collect[T, C any](seq iter.Seq[Outcome[T]], build Builder[T, C]) (C, error) {
	values, errs := Partition(seq)
	if len(errs) > 0 {
		var zero C
		return zero, combine(errs)
	}
	return build(values), nil
}

// Collect2 is Collect over (value, error) pairs.
func Collect2[T, C any](seq iter.Seq2[T, error], build Builder[T, C]) (C, error) {
	return Collect(func(yield func(Outcome[T]) bool) {
		for v, err := range seq {
			if !yield(From(v, err)) {
				return
			}
		}
	}, build)
}

// CollectSlice collects outcomes into a slice.
func CollectSlice[T any](outcomes []Outcome[T]) ([]T, error) {
	return Collect(slices.Values(outcomes), Slice[T]())
}

// CollectMap collects key/value outcomes into a map, last write wins.
func CollectMap[K comparable, V any](outcomes []Outcome[Pair[K, V]]) (map[K]V, error) {
	return Collect(slices.Values(outcomes), Map[K, V]())
}

// Partition splits seq into its success values and its failures, keeping the
// relative order of each.
func Partition[T any](seq iter.Seq[Outcome[T]]) ([]T, []error) {
	var (
		values []T
		errs   []error
	)
	for o := range seq {
		if o.Err != nil {
			errs = append(errs, o.Err)
			continue
		}
		values = append(values, o.Value)
	}
	return values, errs
}
