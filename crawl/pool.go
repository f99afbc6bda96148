// Bounded worker pool for per-listing scrapes.

package crawl

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of concurrent scrapes when none is given.
const DefaultWorkers = 5

// Result is the outcome of one job, kept in the slot of the job it came from.
type Result[T any] struct {
	Value T
	Err   error
}

// PoolOptions configures Run.
type PoolOptions struct {
	// Workers caps the calls in flight; zero means DefaultWorkers.
	Workers int
	// OnProgress, when non-nil, is called once per finished job with the
	// number of jobs done so far and the total. Calls are serialized.
	OnProgress func(done, total int)
	Logger     *log.Logger
}

// Run calls fn for every job with at most opts.Workers calls in flight. The
// returned slice is indexed like jobs, whatever order the calls finish in. A
// failing job is logged and recorded in its slot; it never stops the others.
// Run returns ctx.Err() if the context ends before every job has started.
func Run[J, T any](ctx context.Context, jobs []J, fn func(context.Context, J) (T, error), opts PoolOptions) ([]Result[T], error) {
	limit := opts.Workers
	if limit <= 0 {
		limit = DefaultWorkers
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	results := make([]Result[T], len(jobs))

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			v, err := fn(gctx, job)
			results[i] = Result[T]{Value: v, Err: err}
			if err != nil {
				logger.Warn("job failed", "index", i, "err", err)
			}

			mu.Lock()
			done++
			if opts.OnProgress != nil {
				opts.OnProgress(done, len(jobs))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Successful returns the values of jobs that did not fail, in job order.
func Successful[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}
