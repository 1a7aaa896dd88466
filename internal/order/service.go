package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/cart"
	"github.com/vasiliy-maslov/toolstore/internal/pricing"
)

// Fulfillment moves strictly forward. There is no cancellation or reversal:
// a transition absent from this table is rejected.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending: {
		StatusConfirmed: true,
	},
	StatusConfirmed: {
		StatusShipped: true,
	},
	StatusShipped: {
		StatusDelivered: true,
	},
	StatusDelivered: {},
}

var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidStatus           = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrInvalidPaymentMethod    = errors.New("unknown payment method")
)

type Service interface {
	CreateFromCart(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address Address, paymentMethod PaymentMethod) (*Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) error
}

type service struct {
	orderRepo Repository
}

func NewService(orderRepo Repository) Service {
	return &service{orderRepo: orderRepo}
}

// CreateFromCart freezes the ledger into an order snapshot: line items are
// copied by value, totals are computed once via the pricing engine, and the
// result is persisted with status pending. The ledger itself is untouched;
// the caller clears it only after this returns successfully.
func (s *service) CreateFromCart(ctx context.Context, userID uuid.UUID, ledger *cart.Ledger, address Address, paymentMethod PaymentMethod) (*Order, error) {
	if ledger == nil || ledger.IsEmpty() {
		log.Warn().Stringer("user_id", userID).Msg("service: attempt to create order from empty cart")
		return nil, ErrEmptyOrder
	}

	if !paymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	items := make([]OrderItem, 0, len(ledger.Items))
	for _, line := range ledger.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("service: order item quantity for product %s must be greater than zero", line.ProductID)
		}
		if line.Price.IsNegative() {
			return nil, fmt.Errorf("service: order item price for product %s cannot be negative", line.ProductID)
		}
		if line.ProductID == uuid.Nil {
			return nil, errors.New("service: product id in order item cannot be nil")
		}

		items = append(items, OrderItem{
			ProductID:       line.ProductID,
			Name:            line.Name,
			UnitPrice:       pricing.UnitPrice(line.Price, line.DiscountPercent),
			Quantity:        line.Quantity,
			DiscountPercent: line.DiscountPercent,
			SelectedSize:    line.SelectedSize,
			SelectedColor:   line.SelectedColor,
		})
	}

	quote := pricing.Compute(ledger)

	o := &Order{
		UserID:          userID,
		Status:          StatusPending,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		Tax:             quote.Tax,
		Total:           quote.Total,
	}

	if _, err := s.orderRepo.Create(ctx, o); err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("service: failed to create order in repository")
		return nil, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Stringer("order_id", o.ID).Stringer("user_id", userID).Str("total", o.Total.String()).Msg("service: order created")

	return o, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", id).Msg("service: order not found by id")
			return nil, ErrOrderNotFound
		}

		log.Error().Err(err).Msg("service: failed to fetch order by id in repository")
		return nil, fmt.Errorf("service: failed to fetch order by id: %w", err)
	}

	return o, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Stringer("user_id", userID).Msg("service: failed to fetch user orders in repository")
		return nil, fmt.Errorf("service: failed to fetch user orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus validates the transition against the table before touching
// the repository. Setting the current status again is a logged no-op.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus OrderStatus) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}

	currentOrder, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: order not found, cannot update status")
			return ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Msg("service: failed to get order for status update")
		return fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if currentOrder.Status == newStatus {
		log.Info().Stringer("order_id", orderID).Stringer("status", newStatus).Msg("service: order status is already the same, no update needed")
		return nil
	}

	if !allowedTransitions[currentOrder.Status][newStatus] {
		log.Warn().
			Stringer("order_id", currentOrder.ID).
			Stringer("current_status", currentOrder.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, currentOrder.Status, newStatus)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Warn().Err(err).Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: order not found during final update status call")
			return ErrOrderNotFound
		}
		log.Error().Err(err).Stringer("order_id", orderID).Stringer("new_status", newStatus).Msg("service: failed to update order status in repository")
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Stringer("order_id", orderID).Stringer("old_status", currentOrder.Status).Stringer("new_status", newStatus).Msg("service: order status updated")
	return nil
}
