package ports

import (
	"context"

	"checkout-gateway/internal/features/session/domain"
)

// TokenStore defines the secondary port for persisting guest session tokens.
type TokenStore interface {
	// Save persists a guest session token. Saving an existing token is a no-op.
	Save(ctx context.Context, token string) error
	// Exists reports whether the token is known.
	Exists(ctx context.Context, token string) (bool, error)
	// Delete removes a guest session token.
	Delete(ctx context.Context, token string) error
}

// Resolver defines the primary port for identity resolution.
type Resolver interface {
	// Resolve decides whether to act as an authenticated user or a guest.
	// created reports whether a fresh guest token was generated.
	Resolve(ctx context.Context, userToken, guestToken string) (identity domain.Identity, created bool, err error)
	// Discard removes a stored guest session token after successful guest checkout.
	Discard(ctx context.Context, token string) error
}
