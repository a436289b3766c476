// Package fetch binds a remote GET resource to local state with race-safe
// refetch semantics.
//
// Every request a Resource issues gets a generation id, one more than the
// previous. When a response arrives its generation is compared with the
// highest one issued; anything older is dropped without touching state, so a
// slow reply can never overwrite the result of a newer request. Superseded
// requests are not cancelled, only ignored.
//
// While a request is in flight State.Loading is true, the previous Data is
// kept and Err is cleared. Failures are classified into the apiclient
// taxonomy with a displayable message.
//
//	products := fetch.New(fetch.FromClient[catalog.Page[catalog.Product]](client), "/api/products")
//	st := products.Bind(ctx, fs.Query(12), fs) // issues a request
//	st = products.Bind(ctx, fs.Query(12), fs)  // same deps: no request
//	fut := products.Refetch(ctx)
//	st, err := fut.Await()
package fetch
