// Package worker provides a bounded, fail-fast parallel map used by the
// generation pipeline. Work items are independent and side-effect-free, so
// the pool carries no shared mutable state: each worker writes only its own
// result slots, and the first error cancels the remaining work.
package worker

import (
	"context"
	"sync"
)

// DefaultWorkers is the pool size used when the caller does not set one.
const DefaultWorkers = 4

// Map applies fn to every item on a pool of at most workers goroutines and
// returns the results in input order. The first error cancels outstanding
// work and is returned; results are discarded in that case. A workers value
// below one falls back to DefaultWorkers.
func Map[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, ctx.Err()
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	if workers > len(items) {
		workers = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	results := make([]R, len(items))
	indexes := make(chan int)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				if ctx.Err() != nil {
					return
				}
				r, err := fn(ctx, items[i])
				if err != nil {
					fail(err)
					return
				}
				results[i] = r
			}
		}()
	}

feed:
	for i := range items {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
