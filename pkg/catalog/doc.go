// Package catalog reads products and categories from the storefront API and
// binds them to views.
//
// Client wraps an *apiclient.Client with typed calls. Responses are accepted
// both wrapped in a {"data": ...} envelope and bare, and list pages also in
// the {"data": [...], "totalPages": n} shape.
//
// ProductList ties a filter.Sync to a fetch.Resource: every URL change,
// programmatic or from history navigation, rebinds the resource with the new
// filter state, so the list always shows the page the URL describes and a
// slow response for an old URL never overwrites a newer one.
//
//	loc := filter.NewMemoryLocation("?category=tea")
//	list := catalog.NewProductList(ctx, client, filter.NewSync(loc))
//	defer list.Close()
//
//	list.SetPage(ctx, 1)
//	st := list.State() // Loading until the page-1 response settles
//
// Formatter renders prices and dates for display in the client's language.
package catalog
