// Package currency converts base-currency amounts for display. Conversion
// is strictly presentation-side: stored subtotals and totals are always in
// the base currency and are never overwritten with converted values.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const BaseCurrency = "INR"

var ErrUnknownCurrency = errors.New("unknown currency code")

// Display is a converted amount, rounded to 2 decimal places.
type Display struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Symbol   string          `json:"symbol"`
}

type Converter struct {
	rates   map[string]decimal.Decimal
	symbols map[string]string
}

// NewConverter builds a converter over a fixed rate table, base currency
// rate pinned at 1. Rates come from configuration, not from product data.
func NewConverter() *Converter {
	return &Converter{
		rates: map[string]decimal.Decimal{
			BaseCurrency: decimal.NewFromInt(1),
			"USD":        decimal.NewFromFloat(0.012),
			"EUR":        decimal.NewFromFloat(0.011),
			"GBP":        decimal.NewFromFloat(0.0095),
		},
		symbols: map[string]string{
			BaseCurrency: "₹",
			"USD":        "$",
			"EUR":        "€",
			"GBP":        "£",
		},
	}
}

func (c *Converter) Supported(code string) bool {
	_, ok := c.rates[code]
	return ok
}

func (c *Converter) Convert(amount decimal.Decimal, code string) (Display, error) {
	rate, ok := c.rates[code]
	if !ok {
		return Display{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}

	return Display{
		Amount:   amount.Mul(rate).Round(2),
		Currency: code,
		Symbol:   c.symbols[code],
	}, nil
}
