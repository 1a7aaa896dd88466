// Package wishlist keeps a per-session set of product snapshots,
// deduplicated by product id. Its lifecycle is independent from the cart:
// checkout never touches it.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vasiliy-maslov/toolstore/internal/catalog"
)

type Store interface {
	Add(ctx context.Context, sessionID string, product catalog.Product) error
	Remove(ctx context.Context, sessionID string, productID uuid.UUID) error
	List(ctx context.Context, sessionID string) ([]catalog.Product, error)
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func wishlistKey(sessionID string) string {
	return "wishlist:" + sessionID
}

func (s *redisStore) load(ctx context.Context, sessionID string) ([]catalog.Product, error) {
	data, err := s.client.Get(ctx, wishlistKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []catalog.Product{}, nil
		}
		return nil, fmt.Errorf("wishlist store: failed to load wishlist for session %s: %w", sessionID, err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("wishlist store: failed to decode wishlist for session %s: %w", sessionID, err)
	}

	return products, nil
}

func (s *redisStore) save(ctx context.Context, sessionID string, products []catalog.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("wishlist store: failed to encode wishlist for session %s: %w", sessionID, err)
	}

	if err := s.client.Set(ctx, wishlistKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("wishlist store: failed to save wishlist for session %s: %w", sessionID, err)
	}

	return nil
}

// Add appends a snapshot of the product unless one with the same id is
// already present.
func (s *redisStore) Add(ctx context.Context, sessionID string, product catalog.Product) error {
	products, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	for _, p := range products {
		if p.ID == product.ID {
			return nil
		}
	}

	return s.save(ctx, sessionID, append(products, product))
}

// Remove deletes the snapshot with the given product id. Removing an absent
// id is a no-op.
func (s *redisStore) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	products, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range products {
		if products[i].ID == productID {
			return s.save(ctx, sessionID, append(products[:i], products[i+1:]...))
		}
	}

	return nil
}

func (s *redisStore) List(ctx context.Context, sessionID string) ([]catalog.Product, error) {
	return s.load(ctx, sessionID)
}
