package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/fakeapi"
	"github.com/dmitrymomot/storefront/pkg/filter"
)

func newCatalog(t *testing.T, h http.Handler) *catalog.Client {
	t.Helper()

	if h == nil {
		h = fakeapi.New()
	}
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return catalog.NewClient(api)
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()
	c := newCatalog(t, nil)
	ctx := context.Background()

	page, err := c.ListProducts(ctx, filter.Default())
	require.NoError(t, err)
	assert.Len(t, page.Content, filter.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(30), page.TotalElements)

	page, err = c.ListProducts(ctx, filter.Default().WithCategory("tea"))
	require.NoError(t, err)
	require.Len(t, page.Content, 7)
	for _, p := range page.Content {
		assert.Equal(t, "tea", p.Category)
	}

	page, err = c.ListProducts(ctx, filter.Default().WithPriceRange(filter.Price(0), filter.Price(50)).WithSort(filter.SortPrice))
	require.NoError(t, err)
	require.Len(t, page.Content, 5)
	for i := 1; i < len(page.Content); i++ {
		assert.LessOrEqual(t, page.Content[i-1].Price, page.Content[i].Price)
	}

	page, err = c.ListProducts(ctx, filter.Default().WithPage(2))
	require.NoError(t, err)
	assert.Len(t, page.Content, 6)
	assert.Equal(t, 2, page.Number)
	assert.False(t, page.HasNext())
}

func TestClient_Product(t *testing.T) {
	t.Parallel()
	c := newCatalog(t, nil)
	ctx := context.Background()

	p, err := c.Product(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "books", p.Category)

	_, err = c.Product(ctx, 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrRemote)
	e, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, "Product not found", e.Message)

	_, err = c.Product(ctx, 0)
	assert.ErrorIs(t, err, catalog.ErrInvalidProductID)
}

func TestClient_CategoriesAndFeatured(t *testing.T) {
	t.Parallel()
	c := newCatalog(t, nil)
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakeapi.DefaultCategories(), cats)

	featured, err := c.Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, catalog.FeaturedSize)
}

func TestClient_BareBodies(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["a","b"]`))
	})
	mux.HandleFunc("/api/products/3", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":3,"name":"wrapped"}}`))
	})
	c := newCatalog(t, mux)
	ctx := context.Background()

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cats)

	p, err := c.Product(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "wrapped", p.Name)
}
