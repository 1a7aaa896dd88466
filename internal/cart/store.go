package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Store is the save/restore contract for a session's cart ledger. The ledger
// itself lives in memory for the duration of a request; the store makes it
// survive a page reload by serializing it on every mutation.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Ledger, error)
	Save(ctx context.Context, sessionID string, ledger *Ledger) error
	Drop(ctx context.Context, sessionID string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load returns the session's ledger, or a fresh empty one when the session
// has no saved cart yet.
func (s *redisStore) Load(ctx context.Context, sessionID string) (*Ledger, error) {
	data, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewLedger(), nil
		}
		return nil, fmt.Errorf("cart store: failed to load cart for session %s: %w", sessionID, err)
	}

	var ledger Ledger
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("cart store: failed to decode cart for session %s: %w", sessionID, err)
	}
	if ledger.Items == nil {
		ledger.Items = make([]LineItem, 0)
	}

	return &ledger, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, ledger *Ledger) error {
	data, err := json.Marshal(ledger)
	if err != nil {
		return fmt.Errorf("cart store: failed to encode cart for session %s: %w", sessionID, err)
	}

	if err := s.client.Set(ctx, cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart store: failed to save cart for session %s: %w", sessionID, err)
	}

	return nil
}

func (s *redisStore) Drop(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("cart store: failed to drop cart for session %s: %w", sessionID, err)
	}
	log.Debug().Str("session_id", sessionID).Msg("cart store: cart dropped")
	return nil
}
