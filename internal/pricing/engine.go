// Package pricing derives monetary totals from a cart ledger. All functions
// are pure: the same ledger contents always produce the same quote, and no
// I/O happens here.
//
// Rounding policy: line-level and aggregate math is kept exact in decimal;
// only the final total is rounded, to 2 decimal places, half away from zero.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
)

var (
	// Free shipping kicks in strictly above this subtotal, in base currency.
	freeShippingThreshold = decimal.NewFromInt(5000)
	flatShippingFee       = decimal.NewFromInt(100)
	taxRate               = decimal.New(18, -2)
	hundred               = decimal.NewFromInt(100)
)

// Quote is the priced view of a ledger. Amounts are in base currency;
// display conversion happens outside and never feeds back.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// UnitPrice applies the discount percentage to the base price.
// discount 0 returns the price unchanged; discount 100 returns zero.
func UnitPrice(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return price
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(discountPercent))).Div(hundred)
	return price.Mul(factor)
}

// LineTotal is the discounted unit price times the quantity.
func LineTotal(item cart.LineItem) decimal.Decimal {
	return UnitPrice(item.Price, item.DiscountPercent).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums the line totals of every item in the ledger.
func Subtotal(ledger *cart.Ledger) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range ledger.Items {
		subtotal = subtotal.Add(LineTotal(item))
	}
	return subtotal
}

// ShippingFee is flat: free strictly above the threshold, otherwise 100.
// An empty cart therefore still quotes the flat fee; checkout rejects empty
// carts before this matters.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// Tax is 18% of the subtotal. Shipping is not taxed.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate)
}

// Compute prices the ledger: subtotal, shipping, tax, and the rounded total.
func Compute(ledger *cart.Ledger) Quote {
	subtotal := Subtotal(ledger)
	shipping := ShippingFee(subtotal)
	tax := Tax(subtotal)

	return Quote{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Tax:         tax,
		Total:       subtotal.Add(shipping).Add(tax).Round(2),
	}
}
