package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Product is a catalog item.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Category      string   `json:"category"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Images        []string `json:"images,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// Cover returns the main image, falling back to the first gallery image.
func (p Product) Cover() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// Page is one page of a paginated list. Number is zero-based.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool {
	return p.Number > 0
}

// UnmarshalJSON accepts a bare page object, a bare array, and both wrapped
// in a "data" envelope. Metadata next to the envelope fills what the inner
// value leaves unset.
func (p *Page[T]) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedPage, err)
		}
		*p = singlePage(items)
		return nil
	}

	var wire struct {
		Data          json.RawMessage `json:"data"`
		Content       []T             `json:"content"`
		TotalPages    int             `json:"totalPages"`
		TotalElements int64           `json:"totalElements"`
		Number        int             `json:"number"`
		Size          int             `json:"size"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}

	meta := Page[T]{
		Content:       wire.Content,
		TotalPages:    wire.TotalPages,
		TotalElements: wire.TotalElements,
		Number:        wire.Number,
		Size:          wire.Size,
	}
	data := bytes.TrimSpace(wire.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = meta
		return nil
	}

	var inner Page[T]
	if err := inner.UnmarshalJSON(data); err != nil {
		return err
	}
	if data[0] == '[' {
		inner.TotalPages = max(meta.TotalPages, inner.TotalPages)
		if meta.TotalElements > 0 {
			inner.TotalElements = meta.TotalElements
		}
		inner.Number, inner.Size = meta.Number, max(meta.Size, inner.Size)
	}
	*p = inner
	return nil
}

func singlePage[T any](items []T) Page[T] {
	p := Page[T]{Content: items, TotalElements: int64(len(items)), Size: len(items)}
	if len(items) > 0 {
		p.TotalPages = 1
	}
	return p
}

// enveloped decodes either {"data": value} or a bare value.
type enveloped[T any] struct {
	Value T
}

func (e *enveloped[T]) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var probe struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil {
			if data := bytes.TrimSpace(probe.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
				return json.Unmarshal(data, &e.Value)
			}
		}
	}
	return json.Unmarshal(raw, &e.Value)
}
