package service

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/features/cart/domain"
	"checkout-gateway/internal/features/cart/ports"
	sessiondomain "checkout-gateway/internal/features/session/domain"
)

// ErrInvalidIdentity is returned when the identity cannot perform cart operations.
var ErrInvalidIdentity = errors.New("identity cannot perform cart operations")

// CartService handles cart retrieval for resolved identities.
type CartService struct {
	// provider is the interface for cart data from the commerce API.
	provider ports.Provider
}

// NewCartService creates a new CartService.
func NewCartService(provider ports.Provider) *CartService {
	return &CartService{
		provider: provider,
	}
}

// GetCart retrieves the current cart. An empty cart is returned as-is;
// emptiness is a valid terminal state, not a failure.
func (s *CartService) GetCart(ctx context.Context, identity sessiondomain.Identity) (*domain.Cart, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}

	cart, err := s.provider.GetCart(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("cart retrieval failed: %w", err)
	}

	return cart, nil
}

// ClearCart removes every line from the identity's cart.
func (s *CartService) ClearCart(ctx context.Context, identity sessiondomain.Identity) error {
	if !identity.Valid() {
		return ErrInvalidIdentity
	}

	if err := s.provider.ClearCart(ctx, identity); err != nil {
		return fmt.Errorf("cart clear failed: %w", err)
	}
	return nil
}
