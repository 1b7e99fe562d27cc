// Package async runs computations in goroutines and collects their results
// through generic futures.
//
// Async starts one function and returns a *Future; Bounded starts one per
// input item while capping how many run at once, which is how the key
// backfill spreads name groups over a fixed number of workers. WaitAll
// gathers results in input order.
//
//	futures := async.Bounded(ctx, 4, groups, func(ctx context.Context, g group) ([]result, error) {
//	    return process(ctx, g)
//	})
//	results, err := async.WaitAll(futures...)
//
// If ctx is cancelled before a function starts, its Future completes with
// ctx.Err() and the function is never called.
package async
