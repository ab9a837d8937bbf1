package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/placard/pkg/diagram"
)

// BatchResult is the outcome of one definition in a batch.
type BatchResult struct {
	Result *Result
	Err    error
}

// ExecuteBatch runs Execute for every definition with at most limit runs
// in flight (GOMAXPROCS when limit <= 0). Results keep the input order.
// A failing definition does not stop the others; the returned error is
// only set when ctx is canceled.
func (r *Runner) ExecuteBatch(ctx context.Context, defs []*diagram.Definition, opts Options, limit int) ([]BatchResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(defs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, def := range defs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return err
			}
			res, err := r.Execute(gctx, def, opts)
			results[i] = BatchResult{Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
