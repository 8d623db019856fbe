package cli

import (
	"fmt"
	"io"
	"time"

	"storefront_backend/internal/cart/domain"
	catalog "storefront_backend/internal/catalog/domain"
)

type categoriesView struct {
	Categories []string `json:"categories" yaml:"categories"`
}

func (v categoriesView) writeText(w io.Writer) error {
	for _, name := range v.Categories {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

type productView struct {
	ID       int64   `json:"id" yaml:"id"`
	Title    string  `json:"title" yaml:"title"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price" yaml:"price"`
	Rating   float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews  int     `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

type productsView struct {
	Category string        `json:"category" yaml:"category"`
	Products []productView `json:"products" yaml:"products"`
}

func newProductsView(category string, products []catalog.Product) productsView {
	view := productsView{Category: category, Products: make([]productView, 0, len(products))}
	for _, p := range products {
		pv := productView{ID: p.ID, Title: p.Title, Category: p.Category, Price: p.Price}
		if p.Rating != nil {
			pv.Rating = p.Rating.Rate
			pv.Reviews = p.Rating.Count
		}
		view.Products = append(view.Products, pv)
	}
	return view
}

func (v productsView) writeText(w io.Writer) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
	for _, p := range v.Products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%.1f (%d)\n", p.ID, p.Title, p.Category, p.Price, p.Rating, p.Reviews)
	}
	return tw.Flush()
}

type lineView struct {
	ID       int64   `json:"id" yaml:"id"`
	Title    string  `json:"title" yaml:"title"`
	Price    float64 `json:"price" yaml:"price"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Subtotal string  `json:"subtotal" yaml:"subtotal"`
}

type cartView struct {
	Items         []lineView `json:"items" yaml:"items"`
	TotalQuantity int        `json:"totalQuantity" yaml:"totalQuantity"`
	TotalPrice    string     `json:"totalPrice" yaml:"totalPrice"`
}

func newLines(items []domain.CartItem) []lineView {
	lines := make([]lineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, lineView{
			ID:       item.ID,
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return lines
}

func newCartView(state domain.State) cartView {
	return cartView{
		Items:         newLines(state.Items),
		TotalQuantity: state.TotalQuantity(),
		TotalPrice:    state.TotalPrice().StringFixed(2),
	}
}

func writeLines(w io.Writer, lines []lineView) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%s\n", l.ID, l.Title, l.Quantity, l.Price, l.Subtotal)
	}
	return tw.Flush()
}

func (v cartView) writeText(w io.Writer) error {
	if len(v.Items) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}
	if err := writeLines(w, v.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal items: %d\nTotal price: $%s\n", v.TotalQuantity, v.TotalPrice)
	return err
}

type receiptView struct {
	OrderID       string     `json:"orderId" yaml:"orderId"`
	Items         []lineView `json:"items" yaml:"items"`
	TotalQuantity int        `json:"totalQuantity" yaml:"totalQuantity"`
	TotalPrice    string     `json:"totalPrice" yaml:"totalPrice"`
	PlacedAt      string     `json:"placedAt" yaml:"placedAt"`
	Message       string     `json:"message" yaml:"message"`
}

func newReceiptView(r domain.Receipt) receiptView {
	return receiptView{
		OrderID:       r.OrderID,
		Items:         newLines(r.Items),
		TotalQuantity: r.TotalQuantity,
		TotalPrice:    r.TotalPrice.StringFixed(2),
		PlacedAt:      r.PlacedAt.Format(time.RFC3339),
		Message:       r.Message,
	}
}

func (v receiptView) writeText(w io.Writer) error {
	if err := writeLines(w, v.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nOrder %s: %d items, $%s\n%s\n", v.OrderID, v.TotalQuantity, v.TotalPrice, v.Message)
	return err
}
