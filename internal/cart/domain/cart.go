// Package domain holds the cart state and its pure transitions.
//
// A State is an ordered list of line items with at most one item per product
// id and every quantity at least 1. Transitions never modify their receiver;
// they return a new State. Persistence is handled elsewhere.
package domain

import (
	catalog "storefront_backend/internal/catalog/domain"

	"github.com/shopspring/decimal"
)

// CartItem is a product in the cart together with its quantity.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (i CartItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is the list of line items in insertion order.
type State struct {
	Items []CartItem `json:"items"`
}

// NewState builds a State from items, enforcing the cart invariants.
func NewState(items []CartItem) State {
	return State{Items: Normalize(items)}
}

// Normalize drops items without a valid id or a positive quantity and merges
// duplicate ids into the first occurrence by summing quantities.
func Normalize(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.ID <= 0 || item.Quantity < 1 {
			continue
		}
		if pos, ok := index[item.ID]; ok {
			out[pos].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// Clone returns a State that shares no memory with s.
func (s State) Clone() State {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if r := items[i].Rating; r != nil {
			rating := *r
			items[i].Rating = &rating
		}
	}
	return State{Items: items}
}

// Len returns the number of distinct products in the cart.
func (s State) Len() int {
	return len(s.Items)
}

// IsEmpty reports whether the cart has no items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Find returns the line item for id.
func (s State) Find(id int64) (CartItem, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Items[i], true
	}
	return CartItem{}, false
}

// Add increments the quantity of product if present, otherwise appends it with quantity 1.
// An existing line keeps the product data it was added with.
func (s State) Add(product catalog.Product) State {
	next := s.Clone()
	if i := next.indexOf(product.ID); i >= 0 {
		next.Items[i].Quantity++
		return next
	}
	if product.Rating != nil {
		rating := *product.Rating
		product.Rating = &rating
	}
	next.Items = append(next.Items, CartItem{Product: product, Quantity: 1})
	return next
}

// Remove deletes the line for id. Unknown ids leave the state unchanged.
func (s State) Remove(id int64) State {
	next := s.Clone()
	if i := next.indexOf(id); i >= 0 {
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
	}
	return next
}

// Increment adds one to the quantity of id. Unknown ids leave the state unchanged.
func (s State) Increment(id int64) State {
	next := s.Clone()
	if i := next.indexOf(id); i >= 0 {
		next.Items[i].Quantity++
	}
	return next
}

// Decrement subtracts one from the quantity of id, removing the line when it reaches zero.
// Unknown ids leave the state unchanged.
func (s State) Decrement(id int64) State {
	next := s.Clone()
	i := next.indexOf(id)
	if i < 0 {
		return next
	}
	if next.Items[i].Quantity > 1 {
		next.Items[i].Quantity--
		return next
	}
	next.Items = append(next.Items[:i], next.Items[i+1:]...)
	return next
}

// Clear returns an empty cart.
func (s State) Clear() State {
	return State{Items: []CartItem{}}
}

// TotalQuantity is the sum of all quantities.
func (s State) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines.
func (s State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s State) indexOf(id int64) int {
	for i, item := range s.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
