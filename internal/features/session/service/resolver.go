package service

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/features/session/domain"
	"checkout-gateway/internal/features/session/ports"

	"github.com/google/uuid"
)

// ErrSessionUnavailable is returned when the token store cannot be reached.
// Callers must treat it as "cannot perform guest operation", never as an
// empty-but-usable identity.
var ErrSessionUnavailable = errors.New("guest session storage unavailable")

// ResolverService decides, per operation, whether to act as an authenticated
// user or a guest, creating a guest session token lazily on first need.
type ResolverService struct {
	// store is the token persistence port.
	store ports.TokenStore
}

// NewResolverService creates a new ResolverService.
func NewResolverService(store ports.TokenStore) *ResolverService {
	return &ResolverService{
		store: store,
	}
}

// Resolve maps (userToken, guestToken) to an identity descriptor.
// An authenticated token wins outright; a presented guest token is reused
// only when the store knows it; otherwise a fresh guest token is generated
// and persisted. Only the generate-and-persist branch has a side effect.
func (s *ResolverService) Resolve(ctx context.Context, userToken, guestToken string) (domain.Identity, bool, error) {
	if userToken != "" {
		return domain.User(userToken), false, nil
	}

	if guestToken != "" {
		known, err := s.store.Exists(ctx, guestToken)
		if err != nil {
			return domain.Identity{}, false, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		}
		if known {
			return domain.Guest(guestToken), false, nil
		}
	}

	token := domain.GuestTokenPrefix + uuid.NewString()
	if err := s.store.Save(ctx, token); err != nil {
		return domain.Identity{}, false, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	return domain.Guest(token), true, nil
}

// Discard removes a stored guest session token so a subsequent visit starts
// a fresh session.
func (s *ResolverService) Discard(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to discard guest session: %w", err)
	}
	return nil
}
