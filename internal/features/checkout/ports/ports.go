package ports

import (
	"context"
	"errors"

	"checkout-gateway/internal/features/checkout/domain"
	sessiondomain "checkout-gateway/internal/features/session/domain"
)

// ErrStateNotFound is returned when no checkout state exists for an identity.
var ErrStateNotFound = errors.New("checkout state not found")

// StateRepository defines the secondary port for persisting per-identity
// checkout form state.
type StateRepository interface {
	// Get loads the checkout state for an identity.
	// Returns ErrStateNotFound when none exists.
	Get(ctx context.Context, identity sessiondomain.Identity) (*domain.State, error)
	// Save stores the checkout state for an identity.
	Save(ctx context.Context, identity sessiondomain.Identity, state *domain.State) error
	// Delete removes the checkout state for an identity.
	Delete(ctx context.Context, identity sessiondomain.Identity) error
}

// LocationProvider defines the secondary port for the zone reference data.
type LocationProvider interface {
	// Locations returns the zone area lists, city names, and shipping rates.
	Locations(ctx context.Context) (*domain.LocationData, error)
}

// OrderProvider defines the secondary port for order submission.
type OrderProvider interface {
	// CreateOrder submits an authenticated order referencing saved address ids.
	CreateOrder(ctx context.Context, userToken string, req domain.OrderRequest) (*domain.OrderConfirmation, error)
	// CreateGuestOrder submits a guest order with embedded addresses.
	CreateGuestOrder(ctx context.Context, sessionToken string, req domain.GuestOrderRequest) (*domain.OrderConfirmation, error)
}
