package service

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/address/domain"
	"checkout-gateway/internal/features/address/ports"

	"go.uber.org/zap"
)

// ErrAuthenticationRequired is returned when no user token is presented.
var ErrAuthenticationRequired = errors.New("authentication required")

// AddressService handles the saved-address sub-contract of checkout:
// listing, create/edit with first-address default forcing, and delete with
// selection cleanup.
type AddressService struct {
	provider  ports.Provider
	selection ports.Selection
}

// NewAddressService creates a new AddressService.
func NewAddressService(provider ports.Provider, selection ports.Selection) *AddressService {
	return &AddressService{
		provider:  provider,
		selection: selection,
	}
}

// List returns all saved addresses of the user.
func (s *AddressService) List(ctx context.Context, userToken string) ([]domain.Address, error) {
	if userToken == "" {
		return nil, ErrAuthenticationRequired
	}

	addresses, err := s.provider.List(ctx, userToken)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}
	return addresses, nil
}

// Create persists a new address and selects it as the shipping address.
// The first address a user ever creates is forced to default regardless of
// the form's default checkbox.
func (s *AddressService) Create(ctx context.Context, userToken string, input domain.Input) (*domain.Address, error) {
	if userToken == "" {
		return nil, ErrAuthenticationRequired
	}

	existing, err := s.provider.List(ctx, userToken)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}
	if len(existing) == 0 {
		input.IsDefault = true
	}

	created, err := s.provider.Create(ctx, userToken, input)
	if err != nil {
		return nil, fmt.Errorf("service: failed to create address: %w", err)
	}

	if err := s.selection.SelectAddress(ctx, userToken, *created); err != nil {
		return nil, fmt.Errorf("service: failed to select created address: %w", err)
	}

	return created, nil
}

// Update modifies an existing address and selects it as the shipping address.
func (s *AddressService) Update(ctx context.Context, userToken string, id int64, input domain.Input) (*domain.Address, error) {
	if userToken == "" {
		return nil, ErrAuthenticationRequired
	}

	updated, err := s.provider.Update(ctx, userToken, id, input)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update address: %w", err)
	}

	if err := s.selection.SelectAddress(ctx, userToken, *updated); err != nil {
		return nil, fmt.Errorf("service: failed to select updated address: %w", err)
	}

	return updated, nil
}

// Delete removes an address. If the address was the selected shipping
// address, the selection (and a billing selection mirroring it) is cleared
// rather than left dangling.
func (s *AddressService) Delete(ctx context.Context, userToken string, id int64) error {
	if userToken == "" {
		return ErrAuthenticationRequired
	}

	if err := s.provider.Delete(ctx, userToken, id); err != nil {
		return fmt.Errorf("service: failed to delete address: %w", err)
	}

	if err := s.selection.ClearSelection(ctx, userToken, id); err != nil {
		// The remote delete already succeeded; a stale local selection is
		// cleaned up on next state load.
		logger.Get().Warn("Failed to clear address selection after delete",
			zap.Int64("address_id", id),
			zap.Error(err),
		)
	}

	return nil
}
