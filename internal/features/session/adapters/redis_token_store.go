package adapters

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/core/cache"
)

const tokenKeyPrefix = "guest_session:"

// RedisTokenStore implements ports.TokenStore using the cache port.
type RedisTokenStore struct {
	cache cache.Cache
}

// NewRedisTokenStore creates a new RedisTokenStore.
func NewRedisTokenStore(c cache.Cache) *RedisTokenStore {
	return &RedisTokenStore{
		cache: c,
	}
}

// Save persists a guest session token. Tokens do not expire server-side;
// they are discarded explicitly after a successful guest checkout.
func (s *RedisTokenStore) Save(ctx context.Context, token string) error {
	if err := s.cache.Set(ctx, tokenKeyPrefix+token, []byte("1"), 0); err != nil {
		return fmt.Errorf("failed to save guest session token: %w", err)
	}
	return nil
}

// Exists reports whether the token is known.
func (s *RedisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	_, err := s.cache.Get(ctx, tokenKeyPrefix+token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up guest session token: %w", err)
	}
	return true, nil
}

// Delete removes a guest session token.
func (s *RedisTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.cache.Delete(ctx, tokenKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to delete guest session token: %w", err)
	}
	return nil
}
