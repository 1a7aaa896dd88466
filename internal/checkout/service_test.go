package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/checkout"
	"github.com/vasiliy-maslov/toolstore/internal/order"
)

type mockCartStore struct {
	loadFunc func(ctx context.Context, sessionID string) (*cart.Ledger, error)
	saveFunc func(ctx context.Context, sessionID string, ledger *cart.Ledger) error
	dropFunc func(ctx context.Context, sessionID string) error
}

func (m *mockCartStore) Load(ctx context.Context, sessionID string) (*cart.Ledger, error) {
	return m.loadFunc(ctx, sessionID)
}

func (m *mockCartStore) Save(ctx context.Context, sessionID string, ledger *cart.Ledger) error {
	return m.saveFunc(ctx, sessionID, ledger)
}

func (m *mockCartStore) Drop(ctx context.Context, sessionID string) error {
	return m.dropFunc(ctx, sessionID)
}

type mockOrderService struct {
	createFromCartFunc func(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error)
}

func (m *mockOrderService) CreateFromCart(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
	return m.createFromCartFunc(ctx, userID, ledger, address, paymentMethod)
}

func (m *mockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return nil, nil
}

func (m *mockOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	return nil, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus order.OrderStatus) error {
	return nil
}

func filledLedger(t *testing.T) *cart.Ledger {
	t.Helper()
	id, err := uuid.NewV4()
	require.NoError(t, err)
	ledger := cart.NewLedger()
	ledger.Items = append(ledger.Items, cart.LineItem{
		ProductID: id,
		Name:      "Bench Vice",
		Price:     decimal.NewFromInt(2500),
		Quantity:  1,
	})
	return ledger
}

func TestService_Submit_RejectsEmptyCart(t *testing.T) {
	dropped := false
	carts := &mockCartStore{
		loadFunc: func(ctx context.Context, sessionID string) (*cart.Ledger, error) {
			return cart.NewLedger(), nil
		},
		dropFunc: func(ctx context.Context, sessionID string) error {
			dropped = true
			return nil
		},
	}
	orders := &mockOrderService{
		createFromCartFunc: func(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
			t.Fatal("order service must not be called for an empty cart")
			return nil, nil
		},
	}

	svc := checkout.NewService(carts, orders)

	userID, err := uuid.NewV4()
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "sess-1", userID, order.Address{}, order.PaymentCashOnDelivery)
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.False(t, dropped)
}

func TestService_Submit_KeepsCartOnPersistenceFailure(t *testing.T) {
	dropped := false
	carts := &mockCartStore{
		loadFunc: func(ctx context.Context, sessionID string) (*cart.Ledger, error) {
			return filledLedger(t), nil
		},
		dropFunc: func(ctx context.Context, sessionID string) error {
			dropped = true
			return nil
		},
	}
	orders := &mockOrderService{
		createFromCartFunc: func(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
			return nil, errors.New("order store unavailable")
		},
	}

	svc := checkout.NewService(carts, orders)

	userID, err := uuid.NewV4()
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "sess-1", userID, order.Address{}, order.PaymentBankTransfer)
	assert.Error(t, err)
	assert.False(t, dropped, "cart must stay intact when persistence fails")
}

func TestService_Submit_ClearsCartAfterSuccess(t *testing.T) {
	created := &order.Order{Status: order.StatusPending}
	dropped := false

	carts := &mockCartStore{
		loadFunc: func(ctx context.Context, sessionID string) (*cart.Ledger, error) {
			return filledLedger(t), nil
		},
		dropFunc: func(ctx context.Context, sessionID string) error {
			dropped = true
			return nil
		},
	}
	orders := &mockOrderService{
		createFromCartFunc: func(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
			return created, nil
		},
	}

	svc := checkout.NewService(carts, orders)

	userID, err := uuid.NewV4()
	require.NoError(t, err)

	o, err := svc.Submit(context.Background(), "sess-1", userID, order.Address{}, order.PaymentCashOnDelivery)
	require.NoError(t, err)
	assert.Same(t, created, o)
	assert.True(t, dropped, "cart must be cleared after successful persistence")
}

func TestService_Submit_SucceedsEvenIfClearFails(t *testing.T) {
	created := &order.Order{Status: order.StatusPending}

	carts := &mockCartStore{
		loadFunc: func(ctx context.Context, sessionID string) (*cart.Ledger, error) {
			return filledLedger(t), nil
		},
		dropFunc: func(ctx context.Context, sessionID string) error {
			return errors.New("redis gone")
		},
	}
	orders := &mockOrderService{
		createFromCartFunc: func(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
			return created, nil
		},
	}

	svc := checkout.NewService(carts, orders)

	userID, err := uuid.NewV4()
	require.NoError(t, err)

	// the order is durable at this point; a stale cart is logged, not fatal
	o, err := svc.Submit(context.Background(), "sess-1", userID, order.Address{}, order.PaymentCashOnDelivery)
	require.NoError(t, err)
	assert.Same(t, created, o)
}
