package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/toolstore/internal/currency"
)

func TestConverter_Convert(t *testing.T) {
	converter := currency.NewConverter()

	tests := []struct {
		name       string
		amount     string
		code       string
		wantAmount string
		wantSymbol string
	}{
		{name: "base_currency_identity", amount: "2460", code: "INR", wantAmount: "2460", wantSymbol: "₹"},
		{name: "usd", amount: "2460", code: "USD", wantAmount: "29.52", wantSymbol: "$"},
		{name: "eur_rounds_to_two_places", amount: "999", code: "EUR", wantAmount: "10.99", wantSymbol: "€"},
		{name: "zero", amount: "0", code: "GBP", wantAmount: "0", wantSymbol: "£"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := converter.Convert(decimal.RequireFromString(tt.amount), tt.code)
			require.NoError(t, err)
			assert.True(t, got.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"Convert(%s, %s) = %s, want %s", tt.amount, tt.code, got.Amount, tt.wantAmount)
			assert.Equal(t, tt.code, got.Currency)
			assert.Equal(t, tt.wantSymbol, got.Symbol)
		})
	}
}

func TestConverter_UnknownCurrency(t *testing.T) {
	converter := currency.NewConverter()

	_, err := converter.Convert(decimal.NewFromInt(100), "XYZ")
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
	assert.False(t, converter.Supported("XYZ"))
	assert.True(t, converter.Supported("USD"))
}
