package catalog

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/fetch"
	"github.com/dmitrymomot/storefront/pkg/filter"
	"github.com/dmitrymomot/storefront/pkg/logger"
)

// API paths.
const (
	PathProducts   = "/api/products"
	PathCategories = "/api/products/categories"
)

// FeaturedSize is the number of products on the home page.
const FeaturedSize = 8

// Client is a typed view of the catalog endpoints.
type Client struct {
	api    fetch.Getter
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient wraps api, usually an *apiclient.Client.
func NewClient(api fetch.Getter, opts ...ClientOption) *Client {
	if api == nil {
		panic("catalog: nil api client")
	}
	c := &Client{api: api, logger: logger.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(logger.Component("catalog"))
	return c
}

// ListProducts returns the page of products selected by st.
func (c *Client) ListProducts(ctx context.Context, st filter.State) (Page[Product], error) {
	return c.listProducts(ctx, st.Query(filter.PageSize))
}

// Featured returns the most popular products.
func (c *Client) Featured(ctx context.Context) ([]Product, error) {
	st := filter.Default().WithSort(filter.SortPopularity)
	page, err := c.listProducts(ctx, st.Query(FeaturedSize))
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

func (c *Client) listProducts(ctx context.Context, params url.Values) (Page[Product], error) {
	var page Page[Product]
	if err := c.api.Get(ctx, PathProducts, &page, apiclient.WithQuery(params)); err != nil {
		return Page[Product]{}, err
	}
	c.logger.DebugContext(ctx, "products listed",
		slog.Int("count", len(page.Content)),
		slog.Int("total_pages", page.TotalPages),
	)
	return page, nil
}

// Product returns one product by id.
func (c *Client) Product(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, apiclient.Classify(ErrInvalidProductID)
	}
	var out enveloped[Product]
	if err := c.api.Get(ctx, ProductPath(id), &out); err != nil {
		return Product{}, err
	}
	return out.Value, nil
}

// Categories returns the category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out enveloped[[]string]
	if err := c.api.Get(ctx, PathCategories, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// ProductPath returns the detail path of a product.
func ProductPath(id int64) string {
	return PathProducts + "/" + strconv.FormatInt(id, 10)
}

// ProductsFetcher adapts ListProducts for a fetch.Resource. The resource's
// params are sent as the query.
func (c *Client) ProductsFetcher() fetch.Fetcher[Page[Product]] {
	return func(ctx context.Context, _ string, params url.Values) (Page[Product], error) {
		return c.listProducts(ctx, params)
	}
}

// ProductFetcher adapts Product for a fetch.Resource. The id is taken from
// the "id" param.
func (c *Client) ProductFetcher() fetch.Fetcher[Product] {
	return func(ctx context.Context, _ string, params url.Values) (Product, error) {
		id, err := strconv.ParseInt(params.Get("id"), 10, 64)
		if err != nil {
			return Product{}, apiclient.Classify(ErrInvalidProductID)
		}
		return c.Product(ctx, id)
	}
}

// CategoriesFetcher adapts Categories for a fetch.Resource.
func (c *Client) CategoriesFetcher() fetch.Fetcher[[]string] {
	return func(ctx context.Context, _ string, _ url.Values) ([]string, error) {
		return c.Categories(ctx)
	}
}
