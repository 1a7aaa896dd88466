package cart_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func testProduct(t *testing.T, name string, price int64, discount int) catalog.Product {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	return catalog.Product{
		ID:              id,
		Name:            name,
		Price:           decimal.NewFromInt(price),
		DiscountPercent: discount,
	}
}

func TestLedger_Add_MergesByIdentityKey(t *testing.T) {
	ledger := cart.NewLedger()
	drill := testProduct(t, "Impact Drill", 3000, 10)

	require.NoError(t, ledger.Add(drill, 2, "M", "red"))
	require.NoError(t, ledger.Add(drill, 3, "M", "red"))
	require.NoError(t, ledger.Add(drill, 1, "L", "red"))

	require.Len(t, ledger.Items, 2)
	assert.Equal(t, 5, ledger.Items[0].Quantity)
	assert.Equal(t, "M", ledger.Items[0].SelectedSize)
	assert.Equal(t, 1, ledger.Items[1].Quantity)
	assert.Equal(t, "L", ledger.Items[1].SelectedSize)
}

func TestLedger_Add_PreservesInsertionOrder(t *testing.T) {
	ledger := cart.NewLedger()
	first := testProduct(t, "Angle Grinder", 4500, 0)
	second := testProduct(t, "Socket Set", 1200, 5)

	require.NoError(t, ledger.Add(first, 1, "", ""))
	require.NoError(t, ledger.Add(second, 1, "", ""))
	require.NoError(t, ledger.Add(first, 2, "", ""))

	require.Len(t, ledger.Items, 2)
	assert.Equal(t, first.ID, ledger.Items[0].ProductID)
	assert.Equal(t, 3, ledger.Items[0].Quantity)
	assert.Equal(t, second.ID, ledger.Items[1].ProductID)
}

func TestLedger_Add_CopiesProductFields(t *testing.T) {
	ledger := cart.NewLedger()
	saw := testProduct(t, "Circular Saw", 6500, 15)

	require.NoError(t, ledger.Add(saw, 1, "", ""))

	want := cart.LineItem{
		ProductID:       saw.ID,
		Name:            "Circular Saw",
		Price:           decimal.NewFromInt(6500),
		DiscountPercent: 15,
		Quantity:        1,
	}
	if diff := cmp.Diff(want, ledger.Items[0], decimalComparer); diff != "" {
		t.Errorf("line item mismatch (-want +got):\n%s", diff)
	}
}

func TestLedger_Add_RejectsNonPositiveQuantity(t *testing.T) {
	ledger := cart.NewLedger()
	p := testProduct(t, "Wrench", 500, 0)

	assert.ErrorIs(t, ledger.Add(p, 0, "", ""), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.Add(p, -2, "", ""), cart.ErrInvalidQuantity)
	assert.True(t, ledger.IsEmpty())
}

func TestLedger_Remove(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, l *cart.Ledger) uuid.UUID
		want  int
	}{
		{
			name: "empty_ledger_noop",
			setup: func(t *testing.T, l *cart.Ledger) uuid.UUID {
				id, err := uuid.NewV4()
				require.NoError(t, err)
				return id
			},
			want: 0,
		},
		{
			name: "removes_first_matching_variant_only",
			setup: func(t *testing.T, l *cart.Ledger) uuid.UUID {
				p := testProduct(t, "Glove", 200, 0)
				require.NoError(t, l.Add(p, 1, "M", ""))
				require.NoError(t, l.Add(p, 1, "L", ""))
				return p.ID
			},
			want: 1,
		},
		{
			name: "absent_id_noop",
			setup: func(t *testing.T, l *cart.Ledger) uuid.UUID {
				p := testProduct(t, "Hammer", 800, 0)
				require.NoError(t, l.Add(p, 1, "", ""))
				other, err := uuid.NewV4()
				require.NoError(t, err)
				return other
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := cart.NewLedger()
			id := tt.setup(t, ledger)
			ledger.Remove(id)
			assert.Len(t, ledger.Items, tt.want)
		})
	}
}

func TestLedger_RemoveVariant(t *testing.T) {
	ledger := cart.NewLedger()
	p := testProduct(t, "Safety Boot", 1500, 0)

	require.NoError(t, ledger.Add(p, 1, "42", "black"))
	require.NoError(t, ledger.Add(p, 1, "43", "black"))

	ledger.RemoveVariant(p.ID, "42", "black")

	require.Len(t, ledger.Items, 1)
	assert.Equal(t, "43", ledger.Items[0].SelectedSize)

	// absent combination is a no-op
	ledger.RemoveVariant(p.ID, "44", "black")
	assert.Len(t, ledger.Items, 1)
}

func TestLedger_UpdateQuantity(t *testing.T) {
	ledger := cart.NewLedger()
	p := testProduct(t, "Tape Measure", 300, 0)
	require.NoError(t, ledger.Add(p, 2, "", ""))

	require.NoError(t, ledger.UpdateQuantity(p.ID, 7))
	assert.Equal(t, 7, ledger.Items[0].Quantity)

	// below 1 is rejected, never removes the line
	assert.ErrorIs(t, ledger.UpdateQuantity(p.ID, 0), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.UpdateQuantity(p.ID, -1), cart.ErrInvalidQuantity)
	assert.Equal(t, 7, ledger.Items[0].Quantity)
	assert.Len(t, ledger.Items, 1)
}

func TestLedger_Clear(t *testing.T) {
	ledger := cart.NewLedger()
	p := testProduct(t, "Chisel", 250, 0)
	require.NoError(t, ledger.Add(p, 1, "", ""))

	ledger.Clear()

	assert.True(t, ledger.IsEmpty())
}
