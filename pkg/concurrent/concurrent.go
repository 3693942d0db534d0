package concurrent

import (
	"context"
	"runtime"

	"github.com/zeusync/spatial/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// Concurrent runs the action function for each element of the iterator in a separate goroutine.
// It waits for all goroutines to finish. If action returns an error, it returns the first error encountered.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	errGroup := errgroup.Group{}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}

		errGroup.Go(func() error {
			return action(value)
		})
	}

	return errGroup.Wait()
}

// ParallelMap applies mapFn to each element of the iterator on at most
// workers goroutines and returns the results in input order. A workers
// value below one means runtime.NumCPU. Once ctx is done no further elements
// are started and ctx's error is returned.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(T) R) ([]R, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	in := i.Collect()
	out := make([]R, len(in))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for idx, val := range in {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			out[idx] = mapFn(val)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
