package simulation

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunParallel simulates posts concurrently. Each post's PRNG stream is
// private and post processing has no shared state, so only the merge has to
// care about ordering: per-post buffers are joined in input order and the
// sequence counter is stamped during the merge, which makes the result
// identical to Run for the same inputs.
func (e *Engine) RunParallel(ctx context.Context, posts []Post, workers int) ([]Row, error) {
	if err := e.validatePosts(posts); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	buffers := make([][]Row, len(posts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range posts {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buffers[i] = e.simulatePost(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []Row
	for _, buf := range buffers {
		rows = appendNumbered(rows, buf)
	}
	return rows, nil
}
