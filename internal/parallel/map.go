// Package parallel runs fallible functions concurrently while keeping their
// outcomes in input order, ready to be handed to a bcollect collector.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/bcollect"
)

// Map applies fn to every input using at most limit goroutines (limit <= 0
// means one goroutine per input) and returns the outcomes in input order.
//
// A failing call never cancels the others: every input gets an outcome. Once
// ctx is done, inputs that have not started yet are not run and carry
// ctx.Err() as their failure.
func Map[I, O any](ctx context.Context, inputs []I, limit int, fn func(context.Context, I) (O, error)) []bcollect.Outcome[O] {
	outcomes := make([]bcollect.Outcome[O], len(inputs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, in := range inputs {
		idx, input := i, in
		if err := ctx.Err(); err != nil {
			outcomes[idx] = bcollect.Fail[O](err)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[idx] = bcollect.Fail[O](err)
				return nil
			}
			v, err := fn(ctx, input)
			outcomes[idx] = bcollect.From(v, err)
			return nil
		})
	}

	g.Wait()
	return outcomes
}
