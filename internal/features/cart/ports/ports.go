package ports

import (
	"context"

	"checkout-gateway/internal/features/cart/domain"
	sessiondomain "checkout-gateway/internal/features/session/domain"
)

// Provider defines the interface for cart operations against the remote
// commerce API. This is a Secondary Port (Driven Port).
type Provider interface {
	// GetCart retrieves the current cart for the resolved identity.
	GetCart(ctx context.Context, identity sessiondomain.Identity) (*domain.Cart, error)
	// ClearCart removes every line from the identity's cart.
	ClearCart(ctx context.Context, identity sessiondomain.Identity) error
}
