// Package domain contains the catalog records shared by the catalog and cart contexts.
package domain

import "strings"

// AllCategories is the category value meaning "no filter".
const AllCategories = "all"

// Rating is the aggregate review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry as admitted from the remote catalog.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      *Rating `json:"rating,omitempty"`
}

// NormalizeCategory trims a category filter and folds empty or "all" to AllCategories.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, AllCategories) {
		return AllCategories
	}
	return category
}

// IsAll reports whether category, once normalized, selects the whole catalog.
func IsAll(category string) bool {
	return NormalizeCategory(category) == AllCategories
}
