package async

import (
	"context"
	"errors"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the computation completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Async runs fn(ctx, param) in its own goroutine and returns its Future.
// A context that is already done completes the Future with ctx.Err()
// without calling fn.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()
	return f
}

// Bounded is like calling Async once per item, but at most limit calls of fn
// run at the same time. Futures are returned in the order of items. A limit
// below 1 is treated as 1.
func Bounded[T any, U any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (U, error)) []*Future[U] {
	sem := make(chan struct{}, max(limit, 1))
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = Async(ctx, item, func(ctx context.Context, item T) (U, error) {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				var zero U
				return zero, ctx.Err()
			}
			defer func() { <-sem }()
			return fn(ctx, item)
		})
	}
	return futures
}

// WaitAll waits for every future and returns their results in order. Unlike
// a fail-fast join it never abandons a running future: the returned error
// joins the errors of all futures that failed.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var errs []error
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}
