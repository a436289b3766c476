package catalog

import (
	"context"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/fetch"
	"github.com/dmitrymomot/storefront/pkg/filter"
)

// ProductList is the product list view: a resource bound to the filter
// state in the URL.
type ProductList struct {
	filters *filter.Sync
	res     *fetch.Resource[Page[Product]]

	bindMu sync.Mutex // orders state reads with the binds they produce

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewProductList binds the current URL state and follows later changes
// until Close. The resource is named "products" unless opts say otherwise.
func NewProductList(ctx context.Context, c *Client, filters *filter.Sync, opts ...fetch.Option) *ProductList {
	opts = append([]fetch.Option{fetch.WithName("products")}, opts...)

	followCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	l := &ProductList{
		filters: filters,
		res:     fetch.New(c.ProductsFetcher(), PathProducts, opts...),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// Subscribe before the first bind so no URL change is missed.
	changes := filters.Subscribe(followCtx)
	l.rebind(ctx)

	go func() {
		defer close(l.done)
		for {
			select {
			case <-followCtx.Done():
				return
			case _, ok := <-changes.Receive(followCtx):
				if !ok {
					return
				}
				l.rebind(followCtx)
			}
		}
	}()
	return l
}

// rebind binds the state the URL holds now. Changes delivered late are
// harmless: they rebind the current state, which is a no-op when it is
// already bound.
func (l *ProductList) rebind(ctx context.Context) fetch.State[Page[Product]] {
	l.bindMu.Lock()
	defer l.bindMu.Unlock()

	st := l.filters.State()
	return l.res.Bind(ctx, st.Query(filter.PageSize), filter.Encode(st))
}

// State returns the current list snapshot.
func (l *ProductList) State() fetch.State[Page[Product]] {
	return l.res.State()
}

// Filter returns the filter state decoded from the URL.
func (l *ProductList) Filter() filter.State {
	return l.filters.State()
}

// Subscribe delivers a snapshot after every list state change.
func (l *ProductList) Subscribe(ctx context.Context) broadcast.Subscriber[fetch.State[Page[Product]]] {
	return l.res.Subscribe(ctx)
}

// Update applies fn to the filter state, writes it to the URL and binds the
// result.
func (l *ProductList) Update(ctx context.Context, fn func(filter.State) filter.State) fetch.State[Page[Product]] {
	l.filters.Update(fn)
	return l.rebind(ctx)
}

// SetPage moves to page keeping the filters.
func (l *ProductList) SetPage(ctx context.Context, page int) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.WithPage(page) })
}

// SetSearch changes the search text and returns to the first page.
func (l *ProductList) SetSearch(ctx context.Context, search string) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.WithSearch(search) })
}

// SetCategory changes the category and returns to the first page.
func (l *ProductList) SetCategory(ctx context.Context, category string) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.WithCategory(category) })
}

// SetSort changes the ordering and returns to the first page.
func (l *ProductList) SetSort(ctx context.Context, sort filter.Sort) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.WithSort(sort) })
}

// SetPriceRange changes the price bounds and returns to the first page.
func (l *ProductList) SetPriceRange(ctx context.Context, minPrice, maxPrice *float64) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.WithPriceRange(minPrice, maxPrice) })
}

// Reset clears every filter.
func (l *ProductList) Reset(ctx context.Context) fetch.State[Page[Product]] {
	return l.Update(ctx, func(st filter.State) filter.State { return st.Reset() })
}

// Refetch reissues the request for the current URL state and waits for it.
func (l *ProductList) Refetch(ctx context.Context) (fetch.State[Page[Product]], error) {
	st := l.filters.State()
	return l.res.Refetch(ctx, st.Query(filter.PageSize)).AwaitContext(ctx)
}

// Close stops following the URL and discards responses still in flight.
// The filter.Sync stays open.
func (l *ProductList) Close() error {
	l.once.Do(func() {
		l.cancel()
		<-l.done
	})
	return l.res.Close()
}
