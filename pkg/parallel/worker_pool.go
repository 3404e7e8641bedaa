// Package parallel runs independent per-protein work on a bounded number of
// goroutines.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrTooManyWorkers is returned when the worker count exceeds the maximum allowed.
var ErrTooManyWorkers = errors.New("worker count exceeds maximum")

// ErrTaskPanic wraps a panic recovered from a task
var ErrTaskPanic = errors.New("task panicked")

// MaxWorkers is the maximum number of workers allowed in a pool.
const MaxWorkers = math.MaxInt / 2

// WorkerPool bounds the number of tasks running at once
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a pool with the given number of workers.
// Zero or negative selects runtime.NumCPU().
func NewWorkerPool(workers int) (*WorkerPool, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyWorkers, workers, MaxWorkers)
	}
	return &WorkerPool{workers: workers}, nil
}

// Workers returns the concurrency limit
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Run calls task for every index in [0, n). The first error cancels the
// context passed to the remaining tasks and is returned once all have stopped.
func (wp *WorkerPool) Run(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			// Recover from panics in tasks so one protein cannot take down the run
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: task %d: %v", ErrTaskPanic, i, r)
				}
			}()
			return task(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies fn to every item and returns the results in input order
func Map[T, R any](ctx context.Context, wp *WorkerPool, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	err := wp.Run(ctx, len(items), func(ctx context.Context, i int) error {
		r, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
