// Package transport provides DTOs for the cart HTTP endpoints.
package transport

import (
	"time"

	"storefront_backend/internal/cart/domain"
)

type AddItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type CartLineResponse struct {
	domain.CartItem
	Subtotal string `json:"subtotal"`
}

type CartResponse struct {
	Items         []CartLineResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    string             `json:"totalPrice"`
}

type CartSummaryResponse struct {
	Lines         int    `json:"lines"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalPrice    string `json:"totalPrice"`
}

type CheckoutResponse struct {
	OrderID       string             `json:"orderId"`
	Items         []CartLineResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    string             `json:"totalPrice"`
	PlacedAt      time.Time          `json:"placedAt"`
	Message       string             `json:"message"`
}

// ToCartResponse renders a cart with two-decimal money strings.
func ToCartResponse(state domain.State) CartResponse {
	return CartResponse{
		Items:         toLines(state.Items),
		TotalQuantity: state.TotalQuantity(),
		TotalPrice:    state.TotalPrice().StringFixed(2),
	}
}

func ToCartSummaryResponse(state domain.State) CartSummaryResponse {
	return CartSummaryResponse{
		Lines:         state.Len(),
		TotalQuantity: state.TotalQuantity(),
		TotalPrice:    state.TotalPrice().StringFixed(2),
	}
}

func ToCheckoutResponse(receipt domain.Receipt) CheckoutResponse {
	return CheckoutResponse{
		OrderID:       receipt.OrderID,
		Items:         toLines(receipt.Items),
		TotalQuantity: receipt.TotalQuantity,
		TotalPrice:    receipt.TotalPrice.StringFixed(2),
		PlacedAt:      receipt.PlacedAt,
		Message:       receipt.Message,
	}
}

func toLines(items []domain.CartItem) []CartLineResponse {
	lines := make([]CartLineResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLineResponse{CartItem: item, Subtotal: item.Subtotal().StringFixed(2)})
	}
	return lines
}
