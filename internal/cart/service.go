package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
)

// Service loads a session's ledger, applies one mutation, and saves it back.
// Every mutation is serialized to the store so a reload never loses the cart.
type Service interface {
	View(ctx context.Context, sessionID string) (*Ledger, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, selectedSize, selectedColor string) (*Ledger, error)
	UpdateItemQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Ledger, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Ledger, error)
	RemoveItemVariant(ctx context.Context, sessionID string, productID uuid.UUID, selectedSize, selectedColor string) (*Ledger, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    Store
	products catalog.Repository
}

func NewService(store Store, products catalog.Repository) Service {
	return &service{store: store, products: products}
}

func (s *service) View(ctx context.Context, sessionID string) (*Ledger, error) {
	return s.store.Load(ctx, sessionID)
}

// AddItem fetches the live product so the line carries current name, price
// and discount. A missing product surfaces as catalog.ErrProductNotFound;
// the cart is never populated with guessed prices.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, selectedSize, selectedColor string) (*Ledger, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("cart service: failed to fetch product %s: %w", productID, err)
	}

	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := ledger.Add(*product, quantity, selectedSize, selectedColor); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}

	log.Debug().Str("session_id", sessionID).Stringer("product_id", productID).Int("quantity", quantity).Msg("cart service: item added")

	return ledger, nil
}

func (s *service) UpdateItemQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Ledger, error) {
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := ledger.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Ledger, error) {
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger.Remove(productID)

	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

func (s *service) RemoveItemVariant(ctx context.Context, sessionID string, productID uuid.UUID, selectedSize, selectedColor string) (*Ledger, error) {
	ledger, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ledger.RemoveVariant(productID, selectedSize, selectedColor)

	if err := s.store.Save(ctx, sessionID, ledger); err != nil {
		return nil, err
	}

	return ledger, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Drop(ctx, sessionID)
}
