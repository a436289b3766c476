package fakeapi

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

type pageView struct {
	Content       []Product `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int       `json:"totalElements"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := intParam(q.Get("page"), 0)
	size := intParam(q.Get("size"), defaultPageSize)
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)

	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	category := q.Get("category")
	minPrice, hasMin := floatParam(q.Get("minPrice"))
	maxPrice, hasMax := floatParam(q.Get("maxPrice"))

	matched := make([]Product, 0, len(a.products))
	for _, p := range a.products {
		switch {
		case search != "" && !strings.Contains(strings.ToLower(p.Name), search):
		case category != "" && p.Category != category:
		case hasMin && p.Price < minPrice:
		case hasMax && p.Price > maxPrice:
		default:
			matched = append(matched, p)
		}
	}

	sortProducts(matched, q.Get("sort"))

	total := len(matched)
	totalPages := (total + size - 1) / size
	start := min(page*size, total)
	end := min(start+size, total)

	writeJSON(w, http.StatusOK, map[string]any{
		"data": pageView{
			Content:       slices.Clone(matched[start:end]),
			TotalPages:    totalPages,
			TotalElements: total,
			Number:        page,
			Size:          size,
		},
	})
}

func sortProducts(ps []Product, by string) {
	switch by {
	case "price":
		slices.SortStableFunc(ps, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case "popularity":
		slices.SortStableFunc(ps, func(a, b Product) int { return cmp.Compare(b.Popularity, a.Popularity) })
	default:
		slices.SortStableFunc(ps, func(a, b Product) int { return cmp.Compare(a.Name, b.Name) })
	}
}

func (a *API) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid product id")
		return
	}
	for _, p := range a.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeMessage(w, http.StatusNotFound, "Product not found")
}

func (a *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": a.categories})
}

func intParam(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func floatParam(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}
