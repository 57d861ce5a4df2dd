package adapters

import (
	"context"
	"fmt"

	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/features/address/domain"
)

// CommerceAddressAdapter implements the address Provider port using the
// remote commerce API.
type CommerceAddressAdapter struct {
	client *commerce.Client
}

// NewCommerceAddressAdapter creates a new CommerceAddressAdapter.
func NewCommerceAddressAdapter(client *commerce.Client) *CommerceAddressAdapter {
	return &CommerceAddressAdapter{
		client: client,
	}
}

// List returns all saved addresses of the user.
func (a *CommerceAddressAdapter) List(ctx context.Context, userToken string) ([]domain.Address, error) {
	var addresses []domain.Address
	err := a.client.Get(ctx, "/api/v1/addresses", &addresses, commerce.WithBearer(userToken))
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Get retrieves a single address by id.
func (a *CommerceAddressAdapter) Get(ctx context.Context, userToken string, id int64) (*domain.Address, error) {
	var address domain.Address
	err := a.client.Get(ctx, fmt.Sprintf("/api/v1/addresses/%d", id), &address, commerce.WithBearer(userToken))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch address %d: %w", id, err)
	}
	return &address, nil
}

// Create persists a new address and returns the stored record.
func (a *CommerceAddressAdapter) Create(ctx context.Context, userToken string, input domain.Input) (*domain.Address, error) {
	var address domain.Address
	err := a.client.Post(ctx, "/api/v1/addresses", input, &address, commerce.WithBearer(userToken))
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return &address, nil
}

// Update modifies an existing address and returns the stored record.
func (a *CommerceAddressAdapter) Update(ctx context.Context, userToken string, id int64, input domain.Input) (*domain.Address, error) {
	var address domain.Address
	err := a.client.Put(ctx, fmt.Sprintf("/api/v1/addresses/%d", id), input, &address, commerce.WithBearer(userToken))
	if err != nil {
		return nil, fmt.Errorf("failed to update address %d: %w", id, err)
	}
	return &address, nil
}

// Delete removes an address by id.
func (a *CommerceAddressAdapter) Delete(ctx context.Context, userToken string, id int64) error {
	err := a.client.Delete(ctx, fmt.Sprintf("/api/v1/addresses/%d", id), commerce.WithBearer(userToken))
	if err != nil {
		return fmt.Errorf("failed to delete address %d: %w", id, err)
	}
	return nil
}
