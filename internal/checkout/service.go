// Package checkout orchestrates the hand-off from a session cart to a
// durable order. The ordering matters: the order is persisted first, and the
// cart is cleared only after persistence succeeds, so a failed submission
// never loses the shopper's items.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/order"
)

// ErrEmptyCart rejects submission of an empty cart. The pricing engine still
// quotes a nonzero total for one (the flat shipping fee), so the check is on
// the ledger, never on the total.
var ErrEmptyCart = errors.New("cart is empty")

type Service interface {
	Submit(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error)
}

type service struct {
	carts  cart.Store
	orders order.Service
}

func NewService(carts cart.Store, orders order.Service) Service {
	return &service{carts: carts, orders: orders}
}

func (s *service) Submit(ctx context.Context, sessionID string, userID uuid.UUID, address order.Address, paymentMethod order.PaymentMethod) (*order.Order, error) {
	ledger, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("checkout: failed to load cart: %w", err)
	}

	if ledger.IsEmpty() {
		log.Warn().Str("session_id", sessionID).Stringer("user_id", userID).Msg("checkout: submission rejected, cart is empty")
		return nil, ErrEmptyCart
	}

	o, err := s.orders.CreateFromCart(ctx, userID, ledger, address, paymentMethod)
	if err != nil {
		// Cart stays intact: the shopper can retry.
		return nil, err
	}

	if err := s.carts.Drop(ctx, sessionID); err != nil {
		// The order is already durable; a stale cart is the lesser problem.
		log.Error().Err(err).Str("session_id", sessionID).Stringer("order_id", o.ID).Msg("checkout: order persisted but cart clear failed")
	}

	log.Info().Str("session_id", sessionID).Stringer("order_id", o.ID).Msg("checkout: order submitted")

	return o, nil
}
