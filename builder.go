package bcollect

// Builder constructs a container of type C from the ordered success values
// of a collection. A collector invokes it exactly once, after the whole input
// has been partitioned and only when no element failed.
type Builder[T, C any] func(values []T) C

// Pair is a key/value element for mapping containers.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// KV returns the Pair{k, v}.
func KV[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{Key: k, Value: v}
}

// Slice builds an ordered list. The result is never nil.
func Slice[T any]() Builder[T, []T] {
	return func(values []T) []T {
		out := make([]T, len(values))
		copy(out, values)
		return out
	}
}

// Map builds a unique-key mapping. When several pairs share a key the last
// one wins.
func Map[K comparable, V any]() Builder[Pair[K, V], map[K]V] {
	return func(values []Pair[K, V]) map[K]V {
		out := make(map[K]V, len(values))
		for _, p := range values {
			out[p.Key] = p.Value
		}
		return out
	}
}

// Set builds a set of the distinct values.
func Set[T comparable]() Builder[T, map[T]struct{}] {
	return func(values []T) map[T]struct{} {
		out := make(map[T]struct{}, len(values))
		for _, v := range values {
			out[v] = struct{}{}
		}
		return out
	}
}
