// Package async provides a generic Future for work that runs in its own
// goroutine.
//
// Go starts the function and returns immediately. Callers block with Await,
// bound the wait with AwaitContext, select on Done or poll with IsComplete.
// Resolved builds a future that is already complete, for operations that can
// answer synchronously.
//
//	f := async.Go(func() (Page, error) {
//	    return client.ListProducts(ctx, st)
//	})
//	page, err := f.Await()
//
// A future completes exactly once. There is no cancellation: AwaitContext
// returning early leaves the work running.
package async
