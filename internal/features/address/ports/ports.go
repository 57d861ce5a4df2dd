package ports

import (
	"context"

	"checkout-gateway/internal/features/address/domain"
)

// Provider defines the interface for address persistence against the remote
// commerce API. This is a Secondary Port (Driven Port).
type Provider interface {
	// List returns all saved addresses of the user.
	List(ctx context.Context, userToken string) ([]domain.Address, error)
	// Get retrieves a single address by id.
	Get(ctx context.Context, userToken string, id int64) (*domain.Address, error)
	// Create persists a new address and returns the stored record.
	Create(ctx context.Context, userToken string, input domain.Input) (*domain.Address, error)
	// Update modifies an existing address and returns the stored record.
	Update(ctx context.Context, userToken string, id int64, input domain.Input) (*domain.Address, error)
	// Delete removes an address by id.
	Delete(ctx context.Context, userToken string, id int64) error
}

// Selection is implemented by the checkout flow. Saving an address selects it
// as the shipping (and mirrored billing) address; deleting the selected
// address must clear the selection rather than leave a dangling id.
type Selection interface {
	// SelectAddress marks the address as the user's shipping selection and
	// seeds the shipping zone from the address's zone flag.
	SelectAddress(ctx context.Context, userToken string, addr domain.Address) error
	// ClearSelection drops any shipping/billing selection referencing the id.
	ClearSelection(ctx context.Context, userToken string, addressID int64) error
}
