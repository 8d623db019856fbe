package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutMessage is shown to the shopper once an order is placed.
const CheckoutMessage = "Thank you! Your order has been placed and your cart is now empty."

// Receipt records a placed order: the cart as it was at checkout.
type Receipt struct {
	OrderID       string
	Items         []CartItem
	TotalQuantity int
	TotalPrice    decimal.Decimal
	PlacedAt      time.Time
	Message       string
}

// NewReceipt captures s under orderID.
func NewReceipt(orderID string, s State, placedAt time.Time) Receipt {
	snapshot := s.Clone()
	return Receipt{
		OrderID:       orderID,
		Items:         snapshot.Items,
		TotalQuantity: snapshot.TotalQuantity(),
		TotalPrice:    snapshot.TotalPrice(),
		PlacedAt:      placedAt,
		Message:       CheckoutMessage,
	}
}
