package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"checkout-gateway/internal/core/cache"
	"checkout-gateway/internal/features/checkout/domain"
	"checkout-gateway/internal/features/checkout/ports"
	sessiondomain "checkout-gateway/internal/features/session/domain"
)

const stateKeyPrefix = "checkout_state:"

// RedisStateRepository implements ports.StateRepository using the cache port.
// State lives until checkout completes or the identity's entry is deleted.
type RedisStateRepository struct {
	cache cache.Cache
}

// NewRedisStateRepository creates a new RedisStateRepository.
func NewRedisStateRepository(c cache.Cache) *RedisStateRepository {
	return &RedisStateRepository{
		cache: c,
	}
}

// Get loads the checkout state for an identity.
func (r *RedisStateRepository) Get(ctx context.Context, identity sessiondomain.Identity) (*domain.State, error) {
	data, err := r.cache.Get(ctx, stateKeyPrefix+identity.Key())
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ports.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout state: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode checkout state: %w", err)
	}
	return &state, nil
}

// Save stores the checkout state for an identity.
func (r *RedisStateRepository) Save(ctx context.Context, identity sessiondomain.Identity, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode checkout state: %w", err)
	}
	if err := r.cache.Set(ctx, stateKeyPrefix+identity.Key(), data, 0); err != nil {
		return fmt.Errorf("failed to save checkout state: %w", err)
	}
	return nil
}

// Delete removes the checkout state for an identity.
func (r *RedisStateRepository) Delete(ctx context.Context, identity sessiondomain.Identity) error {
	if err := r.cache.Delete(ctx, stateKeyPrefix+identity.Key()); err != nil {
		return fmt.Errorf("failed to delete checkout state: %w", err)
	}
	return nil
}
