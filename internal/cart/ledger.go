package cart

import (
	"errors"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// LineItem is one (product, size, color) combination in the cart. Price and
// DiscountPercent are copied from the product at add time; the identity key
// is (ProductID, SelectedSize, SelectedColor).
type LineItem struct {
	ProductID       uuid.UUID       `json:"product_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DiscountPercent int             `json:"discount"`
	Quantity        int             `json:"quantity"`
	SelectedSize    string          `json:"selected_size,omitempty"`
	SelectedColor   string          `json:"selected_color,omitempty"`
}

// Ledger holds the items a shopper intends to buy. Insertion order is display
// order. A ledger belongs to a single session and is never shared across
// goroutines; all mutations are synchronous.
type Ledger struct {
	Items []LineItem `json:"items"`
}

func NewLedger() *Ledger {
	return &Ledger{Items: make([]LineItem, 0)}
}

func (l *Ledger) IsEmpty() bool {
	return len(l.Items) == 0
}

// Add merges the given quantity into an existing line with the same identity
// key, or appends a new line at the end. Stock is not checked: the display
// value is advisory and the cart may exceed it.
func (l *Ledger) Add(product catalog.Product, quantity int, selectedSize, selectedColor string) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range l.Items {
		item := &l.Items[i]
		if item.ProductID == product.ID && item.SelectedSize == selectedSize && item.SelectedColor == selectedColor {
			item.Quantity += quantity
			return nil
		}
	}

	l.Items = append(l.Items, LineItem{
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
		DiscountPercent: product.DiscountPercent,
		Quantity:        quantity,
		SelectedSize:    selectedSize,
		SelectedColor:   selectedColor,
	})
	return nil
}

// Remove deletes the first line whose product id matches, regardless of size
// or color. With two variants of the same product in the cart this is
// ambiguous; callers that know the variant should use RemoveVariant.
// Removing an absent id is a no-op.
func (l *Ledger) Remove(productID uuid.UUID) {
	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return
		}
	}
}

// RemoveVariant deletes the line matching the full identity key. Removing an
// absent combination is a no-op.
func (l *Ledger) RemoveVariant(productID uuid.UUID, selectedSize, selectedColor string) {
	for i := range l.Items {
		item := &l.Items[i]
		if item.ProductID == productID && item.SelectedSize == selectedSize && item.SelectedColor == selectedColor {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity on every line matching the product id.
// A quantity below 1 is rejected; it never removes the line.
func (l *Ledger) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			l.Items[i].Quantity = quantity
		}
	}
	return nil
}

func (l *Ledger) Clear() {
	l.Items = l.Items[:0]
}
