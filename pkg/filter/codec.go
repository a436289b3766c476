package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Encode returns the URL query string of s without the leading "?".
// Fields equal to their defaults are omitted.
func Encode(s State) string {
	n := Normalize(s)
	v := url.Values{}
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
	if n.Sort != DefaultSort {
		v.Set(ParamSort, string(n.Sort))
	}
	if n.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(n.Page))
	}
	return v.Encode()
}

// Decode parses a query string, with or without a leading "?", into a
// normalized State. It never fails: malformed fields take their defaults.
func Decode(query string) State {
	// ParseQuery keeps every well-formed pair even when it reports an error.
	v, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))

	s := Default()
	s.Search = v.Get(ParamSearch)
	s.Category = v.Get(ParamCategory)
	s.MinPrice = parsePrice(v.Get(ParamMinPrice))
	s.MaxPrice = parsePrice(v.Get(ParamMaxPrice))
	if sort := Sort(v.Get(ParamSort)); sort != "" {
		s.Sort = sort
	}
	if page, err := strconv.Atoi(v.Get(ParamPage)); err == nil {
		s.Page = page
	}
	return Normalize(s)
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil
	}
	return &f
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
