// Package transport provides DTOs for the catalog HTTP endpoints.
package transport

import "storefront_backend/internal/catalog/domain"

type ListProductsRequest struct {
	Category string `form:"category" validate:"max=100"`
}

type QueryStatusRequest struct {
	Kind     string `form:"kind" validate:"required,oneof=products categories"`
	Category string `form:"category" validate:"max=100"`
}

type CategoryListResponse struct {
	Items []string `json:"items"`
}

type ProductListResponse struct {
	Category string           `json:"category"`
	Items    []domain.Product `json:"items"`
	Total    int              `json:"total"`
}

type HomeResponse struct {
	Category   string           `json:"category"`
	Categories []string         `json:"categories"`
	Products   []domain.Product `json:"products"`
}

type QueryStatusResponse struct {
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
	Error    string `json:"error,omitempty"`
}
