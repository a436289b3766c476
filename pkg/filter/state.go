package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// PageSize is the number of products requested per page.
const PageSize = 12

// Sort is a product ordering understood by the API.
type Sort string

const (
	SortName       Sort = "name"
	SortPrice      Sort = "price"
	SortPopularity Sort = "popularity"

	DefaultSort = SortName
)

// Sorts lists the supported orderings.
func Sorts() []Sort {
	return []Sort{SortName, SortPrice, SortPopularity}
}

// Valid reports whether s is a supported ordering.
func (s Sort) Valid() bool {
	switch s {
	case SortName, SortPrice, SortPopularity:
		return true
	}
	return false
}

// Query parameter names.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamSort     = "sort"
	ParamPage     = "page"
	ParamSize     = "size"
)

// State is the list search, sort and pagination selection. Nil prices mean
// "no bound". Page is zero-based.
type State struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     Sort
	Page     int
}

// Default returns the state with every field at its default.
func Default() State {
	return State{Sort: DefaultSort}
}

// Price is a helper for building price bounds.
func Price(v float64) *float64 {
	return &v
}

// Normalize returns the canonical form of s: trimmed text, invalid prices
// dropped, unknown sort replaced by the default and negative pages clamped.
// Normalize is idempotent.
func Normalize(s State) State {
	return State{
		Search:   strings.TrimSpace(s.Search),
		Category: strings.TrimSpace(s.Category),
		MinPrice: normalizePrice(s.MinPrice),
		MaxPrice: normalizePrice(s.MaxPrice),
		Sort:     normalizeSort(s.Sort),
		Page:     max(s.Page, 0),
	}
}

func normalizePrice(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return nil
	}
	v := *p
	if v == 0 {
		v = 0 // folds -0 into +0
	}
	return &v
}

func normalizeSort(s Sort) Sort {
	if s.Valid() {
		return s
	}
	return DefaultSort
}

// Equal compares two states field by field, prices by value.
func (s State) Equal(o State) bool {
	return s.Search == o.Search &&
		s.Category == o.Category &&
		priceEqual(s.MinPrice, o.MinPrice) &&
		priceEqual(s.MaxPrice, o.MaxPrice) &&
		s.Sort == o.Sort &&
		s.Page == o.Page
}

func priceEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsDefault reports whether s normalizes to Default().
func (s State) IsDefault() bool {
	return Normalize(s).Equal(Default())
}

// SameFilters reports whether s and o differ at most in Page.
func (s State) SameFilters(o State) bool {
	s.Page, o.Page = 0, 0
	return Normalize(s).Equal(Normalize(o))
}

// WithSearch sets the search text and resets the page.
func (s State) WithSearch(search string) State {
	s.Search = search
	s.Page = 0
	return s
}

// WithCategory sets the category and resets the page.
func (s State) WithCategory(category string) State {
	s.Category = category
	s.Page = 0
	return s
}

// WithPriceRange sets both price bounds and resets the page.
func (s State) WithPriceRange(minPrice, maxPrice *float64) State {
	s.MinPrice = normalizePrice(minPrice)
	s.MaxPrice = normalizePrice(maxPrice)
	s.Page = 0
	return s
}

// WithSort sets the ordering and resets the page.
func (s State) WithSort(sort Sort) State {
	s.Sort = sort
	s.Page = 0
	return s
}

// WithPage changes only the page.
func (s State) WithPage(page int) State {
	s.Page = max(page, 0)
	return s
}

// Reset returns the default state.
func (s State) Reset() State {
	return Default()
}

// Query returns the API request parameters for s with the given page size.
// Page, size and sort are always present.
func (s State) Query(pageSize int) url.Values {
	n := Normalize(s)
	v := url.Values{}
	v.Set(ParamPage, strconv.Itoa(n.Page))
	v.Set(ParamSize, strconv.Itoa(pageSize))
	v.Set(ParamSort, string(n.Sort))
	if n.Search != "" {
		v.Set(ParamSearch, n.Search)
	}
	if n.Category != "" {
		v.Set(ParamCategory, n.Category)
	}
	if n.MinPrice != nil {
		v.Set(ParamMinPrice, formatPrice(*n.MinPrice))
	}
	if n.MaxPrice != nil {
		v.Set(ParamMaxPrice, formatPrice(*n.MaxPrice))
	}
	return v
}
