package adapters

import (
	"context"
	"fmt"

	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/features/checkout/domain"
)

// CommerceOrderAdapter implements ports.OrderProvider using the remote
// commerce API. The API owns order state; this adapter only submits.
type CommerceOrderAdapter struct {
	client *commerce.Client
}

// NewCommerceOrderAdapter creates a new CommerceOrderAdapter.
func NewCommerceOrderAdapter(client *commerce.Client) *CommerceOrderAdapter {
	return &CommerceOrderAdapter{
		client: client,
	}
}

// CreateOrder submits an authenticated order referencing saved address ids.
func (a *CommerceOrderAdapter) CreateOrder(ctx context.Context, userToken string, req domain.OrderRequest) (*domain.OrderConfirmation, error) {
	var confirmation domain.OrderConfirmation
	err := a.client.Post(ctx, "/api/v1/orders", req, &confirmation, commerce.WithBearer(userToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &confirmation, nil
}

// CreateGuestOrder submits a guest order with embedded addresses, identified
// by the guest session token.
func (a *CommerceOrderAdapter) CreateGuestOrder(ctx context.Context, sessionToken string, req domain.GuestOrderRequest) (*domain.OrderConfirmation, error) {
	var confirmation domain.OrderConfirmation
	err := a.client.Post(ctx, "/api/v1/guest/orders", req, &confirmation, commerce.WithQuery("session_token", sessionToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create guest order: %w", err)
	}
	return &confirmation, nil
}
