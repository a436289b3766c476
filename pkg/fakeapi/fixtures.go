package fakeapi

import (
	"fmt"
	"time"
)

// Account is a fixture user. Password is plain text and hashed on load.
type Account struct {
	ID        int64
	Username  string
	Password  string
	Email     string
	Phone     string
	Address   string
	Roles     []string
	Enabled   bool
	CreatedAt time.Time
}

// Product mirrors the backend's product representation.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity int      `json:"stockQuantity"`
	Category      string   `json:"category"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Images        []string `json:"images,omitempty"`
	Popularity    int      `json:"popularity"`
}

var fixtureEpoch = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// DefaultAccounts returns the built-in users.
func DefaultAccounts() []Account {
	return []Account{
		{ID: 1, Username: "Alice", Password: "11111", Email: "alice@example.com", Roles: []string{"USER"}, Enabled: true, CreatedAt: fixtureEpoch},
		{ID: 2, Username: "admin", Password: "admin123", Email: "admin@example.com", Roles: []string{"ADMIN", "USER"}, Enabled: true, CreatedAt: fixtureEpoch},
	}
}

// DefaultCategories returns the built-in category names.
func DefaultCategories() []string {
	return []string{"books", "electronics", "home", "tea"}
}

// DefaultProducts returns 30 products spread over DefaultCategories.
func DefaultProducts() []Product {
	cats := DefaultCategories()
	products := make([]Product, 0, 30)
	for i := 1; i <= 30; i++ {
		cat := cats[(i-1)%len(cats)]
		products = append(products, Product{
			ID:            int64(i),
			Name:          fmt.Sprintf("%s item %02d", cat, i),
			Description:   fmt.Sprintf("Fixture product %d in %s", i, cat),
			Price:         float64(i*10) - 0.01,
			StockQuantity: (i * 7) % 23,
			Category:      cat,
			ImageURL:      fmt.Sprintf("/images/%d.jpg", i),
			Images:        []string{fmt.Sprintf("/images/%d.jpg", i), fmt.Sprintf("/images/%d-2.jpg", i)},
			Popularity:    (i * 37) % 101,
		})
	}
	return products
}
