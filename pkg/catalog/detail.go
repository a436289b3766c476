package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/fetch"
)

// ProductDetail is the product page view. Showing another product while a
// previous one is still loading discards the earlier response.
type ProductDetail struct {
	res *fetch.Resource[Product]
}

// NewProductDetail creates an unbound detail view.
func NewProductDetail(c *Client, opts ...fetch.Option) *ProductDetail {
	opts = append([]fetch.Option{fetch.WithName("product")}, opts...)
	return &ProductDetail{
		res: fetch.New(c.ProductFetcher(), PathProducts+"/{id}", opts...),
	}
}

// Show binds the view to product id. Showing the same id again issues
// nothing.
func (d *ProductDetail) Show(ctx context.Context, id int64) fetch.State[Product] {
	params := url.Values{"id": {strconv.FormatInt(id, 10)}}
	return d.res.Bind(ctx, params, id)
}

// Reload refetches the shown product and waits for it.
func (d *ProductDetail) Reload(ctx context.Context) (fetch.State[Product], error) {
	return d.res.Refetch(ctx).AwaitContext(ctx)
}

// State returns the current snapshot.
func (d *ProductDetail) State() fetch.State[Product] {
	return d.res.State()
}

// Subscribe delivers a snapshot after every state change.
func (d *ProductDetail) Subscribe(ctx context.Context) broadcast.Subscriber[fetch.State[Product]] {
	return d.res.Subscribe(ctx)
}

// Close discards responses still in flight.
func (d *ProductDetail) Close() error {
	return d.res.Close()
}

// NotFound reports whether st settled with a 404.
func NotFound(st fetch.State[Product]) bool {
	return st.Err != nil && st.Err.Status == http.StatusNotFound
}
