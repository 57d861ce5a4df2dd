package service

import (
	"context"
	"errors"
	"testing"

	"checkout-gateway/internal/features/cart/domain"
	sessiondomain "checkout-gateway/internal/features/session/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider is a mock implementation of ports.Provider.
type mockProvider struct {
	cart     *domain.Cart
	getErr   error
	clearErr error
	cleared  bool
}

func (m *mockProvider) GetCart(ctx context.Context, identity sessiondomain.Identity) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockProvider) ClearCart(ctx context.Context, identity sessiondomain.Identity) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	return nil
}

// TestGetCart_Success verifies retrieval for a valid identity.
func TestGetCart_Success(t *testing.T) {
	expected := &domain.Cart{
		Items:       []domain.CartItem{{ProductID: "p1", Quantity: 1, Subtotal: 500}},
		TotalAmount: 500,
	}
	svc := NewCartService(&mockProvider{cart: expected})

	cart, err := svc.GetCart(context.Background(), sessiondomain.Guest("guest_abc"))
	require.NoError(t, err)
	assert.Equal(t, expected, cart)
}

// TestGetCart_EmptyIsNotAnError verifies the empty-cart terminal state.
func TestGetCart_EmptyIsNotAnError(t *testing.T) {
	svc := NewCartService(&mockProvider{cart: &domain.Cart{}})

	cart, err := svc.GetCart(context.Background(), sessiondomain.User("tok"))
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

// TestGetCart_InvalidIdentity verifies that an empty token cannot fetch a cart.
func TestGetCart_InvalidIdentity(t *testing.T) {
	svc := NewCartService(&mockProvider{cart: &domain.Cart{}})

	_, err := svc.GetCart(context.Background(), sessiondomain.Guest(""))
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

// TestGetCart_ProviderError verifies error propagation.
func TestGetCart_ProviderError(t *testing.T) {
	svc := NewCartService(&mockProvider{getErr: errors.New("api down")})

	_, err := svc.GetCart(context.Background(), sessiondomain.User("tok"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart retrieval failed")
}

// TestClearCart verifies the clear path and identity guard.
func TestClearCart(t *testing.T) {
	provider := &mockProvider{}
	svc := NewCartService(provider)

	require.NoError(t, svc.ClearCart(context.Background(), sessiondomain.Guest("guest_abc")))
	assert.True(t, provider.cleared)

	assert.ErrorIs(t, svc.ClearCart(context.Background(), sessiondomain.User("")), ErrInvalidIdentity)
}
