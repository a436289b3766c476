package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
	"github.com/dmitrymomot/storefront/pkg/catalog"
	"github.com/dmitrymomot/storefront/pkg/fetch"
	"github.com/dmitrymomot/storefront/pkg/filter"
	"github.com/dmitrymomot/storefront/pkg/forms"
)

type productsFlags struct {
	query    string
	search   string
	category string
	minPrice float64
	maxPrice float64
	sort     string
	page     int
}

func productsCmd(getApp appFunc) *cobra.Command {
	var fl productsFlags

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Long: `List products matching the filters.

--query takes a list URL query such as "category=tea&page=2"; flags given
explicitly are applied on top of it. Pages are numbered from 1.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := a.catalog()
			if err != nil {
				return err
			}

			next := applyProductFlags(cmd, fl, filter.Decode(fl.query))
			if err := forms.NewValidator(a.loc).PriceRange(next.MinPrice, next.MaxPrice).ErrIn(a.loc); err != nil {
				return err
			}

			filters := filter.NewSync(filter.NewMemoryLocation(filter.Encode(next)), filter.WithLogger(a.log))
			defer filters.Close()

			list := catalog.NewProductList(ctx, c, filters,
				fetch.WithLogger(a.log),
				fetch.WithMetrics(a.metrics),
				fetch.WithLocalizer(a.loc),
			)
			defer list.Close()

			sub := list.Subscribe(ctx)
			st, err := awaitSettled(ctx, list, sub.Receive(ctx))
			if err != nil {
				return err
			}
			if st.Err != nil {
				return st.Err
			}
			a.log.DebugContext(ctx, "products listed", "query", list.Filter(), "generation", st.Generation)
			return a.out.Products(st.Data)
		},
	}

	cmd.Flags().StringVar(&fl.query, "query", "", "List URL query to start from")
	cmd.Flags().StringVarP(&fl.search, "search", "s", "", "Search text")
	cmd.Flags().StringVarP(&fl.category, "category", "c", "", "Category")
	cmd.Flags().Float64Var(&fl.minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&fl.maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().StringVar(&fl.sort, "sort", "", "Sort by name, price or popularity")
	cmd.Flags().IntVarP(&fl.page, "page", "p", 0, "Page number, starting at 1")
	return cmd
}

// applyProductFlags layers the flags the user actually set over st, in the
// order a user would change them on the list page.
func applyProductFlags(cmd *cobra.Command, fl productsFlags, st filter.State) filter.State {
	changed := cmd.Flags().Changed

	if changed("search") {
		st = st.WithSearch(fl.search)
	}
	if changed("category") {
		st = st.WithCategory(fl.category)
	}
	if changed("min-price") || changed("max-price") {
		lo, hi := st.MinPrice, st.MaxPrice
		if changed("min-price") {
			lo = filter.Price(fl.minPrice)
		}
		if changed("max-price") {
			hi = filter.Price(fl.maxPrice)
		}
		st = st.WithPriceRange(lo, hi)
	}
	if changed("sort") {
		st = st.WithSort(filter.Sort(fl.sort))
	}
	if changed("page") {
		st = st.WithPage(fl.page - 1)
	}
	return filter.Normalize(st)
}

// awaitSettled waits until the list has no request in flight.
func awaitSettled[T any](ctx context.Context, list interface{ State() fetch.State[T] }, updates <-chan broadcast.Message[fetch.State[T]]) (fetch.State[T], error) {
	for {
		if st := list.State(); !st.Loading {
			return st, nil
		}
		select {
		case <-ctx.Done():
			return list.State(), ctx.Err()
		case _, ok := <-updates:
			if !ok {
				return list.State(), nil
			}
		}
	}
}

func productCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			ctx := cmd.Context()
			c, err := a.catalog()
			if err != nil {
				return err
			}

			detail := catalog.NewProductDetail(c,
				fetch.WithLogger(a.log),
				fetch.WithMetrics(a.metrics),
				fetch.WithLocalizer(a.loc),
			)
			defer detail.Close()

			sub := detail.Subscribe(ctx)
			detail.Show(ctx, id)
			st, err := awaitSettled(ctx, detail, sub.Receive(ctx))
			if err != nil {
				return err
			}
			if catalog.NotFound(st) {
				return st.Err.WithFallback(a.loc.T("catalog.not_found"))
			}
			if st.Err != nil {
				return st.Err
			}
			return a.out.Product(st.Data)
		},
	}
}

func categoriesCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			c, err := a.catalog()
			if err != nil {
				return err
			}
			res := fetch.New(c.CategoriesFetcher(), catalog.PathCategories,
				fetch.WithName("categories"),
				fetch.WithLogger(a.log),
				fetch.WithMetrics(a.metrics),
				fetch.WithLocalizer(a.loc),
			)
			defer res.Close()

			st, err := res.Refetch(cmd.Context()).Await()
			if err != nil {
				return err
			}
			return a.out.Categories(st.Data)
		},
	}
}

func homeCmd(getApp appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show popular products and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			c, err := a.catalog()
			if err != nil {
				return err
			}

			var (
				featured []catalog.Product
				cats     []string
			)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				featured, err = c.Featured(ctx)
				return err
			})
			g.Go(func() (err error) {
				cats, err = c.Categories(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if a.out.json {
				return a.out.JSON(map[string]any{"featured": featured, "categories": cats})
			}
			if err := a.out.Categories(cats); err != nil {
				return err
			}
			fmt.Fprintln(a.out.w)
			return a.out.Products(catalog.Page[catalog.Product]{Content: featured})
		},
	}
}
