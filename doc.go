// Package bcollect collects all the errors from a sequence of results into a
// single error.
//
// Where a plain loop stops at the first failure, the collectors in this
// package always consume the whole sequence. If every element succeeded, the
// values are handed, in input order, to a [Builder] that produces the target
// container. If any element failed, the successes are discarded and a single
// [*AggregateError] is returned whose message is every failure's message, in
// input order, each on its own line.
//
//	outcomes := []bcollect.Outcome[struct{}]{
//	    bcollect.Ok(struct{}{}),
//	    bcollect.Fail[struct{}](errors.New("woops")),
//	    bcollect.Fail[struct{}](errors.New("woops again")),
//	}
//	_, err := bcollect.CollectSlice(outcomes)
//	fmt.Println(err) // "woops\nwoops again"
//
// Collectors are pure functions of their input: they perform no I/O, hold no
// state between calls and are safe to call from any number of goroutines.
package bcollect
