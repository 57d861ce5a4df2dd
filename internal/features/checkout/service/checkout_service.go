package service

import (
	"context"
	"errors"
	"fmt"

	"checkout-gateway/internal/core/logger"
	addressdomain "checkout-gateway/internal/features/address/domain"
	addressports "checkout-gateway/internal/features/address/ports"
	cartports "checkout-gateway/internal/features/cart/ports"
	"checkout-gateway/internal/features/checkout/domain"
	"checkout-gateway/internal/features/checkout/ports"
	sessiondomain "checkout-gateway/internal/features/session/domain"
	sessionports "checkout-gateway/internal/features/session/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidIdentity is returned when an operation is attempted with an
	// identity that carries no usable token.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrCartEmpty marks the empty-cart terminal state: checkout short-circuits
	// and the client redirects to browsing. It is not a failure.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrZoneEventNotAllowed is returned when a signed-in user sends a zone
	// event; their zone is derived from the selected saved address instead.
	ErrZoneEventNotAllowed = errors.New("zone is derived from the saved address for signed-in users")
)

// StatePatch is a partial update of the checkout form state. Nil fields are
// left untouched.
type StatePatch struct {
	UseShippingAsBilling *bool                 `json:"use_shipping_as_billing"`
	BillingAddressID     *int64                `json:"billing_address_id"`
	PaymentMethod        *domain.PaymentMethod `json:"payment_method"`
	Notes                *string               `json:"notes"`
	GuestEmail           *string               `json:"guest_email"`
	GuestName            *string               `json:"guest_name"`
	GuestPhone           *string               `json:"guest_phone"`
	GuestArea            *string               `json:"guest_area"`
	GuestLine            *string               `json:"guest_line"`
	GuestLandmark        *string               `json:"guest_landmark"`
}

// CheckoutService orchestrates the checkout pipeline: form state, zone
// resolution, pricing, and order submission with cleanup. It also implements
// the address Selection port so saving or deleting an address keeps the
// checkout selection consistent.
type CheckoutService struct {
	states    ports.StateRepository
	locations ports.LocationProvider
	orders    ports.OrderProvider
	carts     cartports.Provider
	sessions  sessionports.Resolver
	addresses addressports.Provider
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	states ports.StateRepository,
	locations ports.LocationProvider,
	orders ports.OrderProvider,
	carts cartports.Provider,
	sessions sessionports.Resolver,
	addresses addressports.Provider,
) *CheckoutService {
	return &CheckoutService{
		states:    states,
		locations: locations,
		orders:    orders,
		carts:     carts,
		sessions:  sessions,
		addresses: addresses,
	}
}

// GetState returns the checkout form state for an identity, creating the
// initial state on first access. For signed-in users with no zone yet, the
// zone and shipping selection are seeded from their default saved address.
func (s *CheckoutService) GetState(ctx context.Context, identity sessiondomain.Identity) (*domain.State, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return nil, err
	}

	if !identity.IsGuest() && !state.Zone.Valid() && state.ShippingAddressID == 0 {
		s.seedFromDefaultAddress(ctx, identity, state)
	}

	if err := s.states.Save(ctx, identity, state); err != nil {
		return nil, fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return state, nil
}

// ApplyZoneEvent runs the zone reducer for a guest and persists the result.
func (s *CheckoutService) ApplyZoneEvent(ctx context.Context, identity sessiondomain.Identity, event domain.ZoneEvent) (*domain.State, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}
	if !identity.IsGuest() {
		return nil, ErrZoneEventNotAllowed
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return nil, err
	}

	loc, err := s.locations.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load location data: %w", err)
	}

	state.SetZoneState(domain.Apply(state.ZoneState(), event, *loc))

	if err := s.states.Save(ctx, identity, state); err != nil {
		return nil, fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return state, nil
}

// UpdateState applies a partial form update and persists the result.
func (s *CheckoutService) UpdateState(ctx context.Context, identity sessiondomain.Identity, patch StatePatch) (*domain.State, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return nil, err
	}

	if patch.PaymentMethod != nil {
		if !patch.PaymentMethod.Valid() {
			return nil, domain.ErrPaymentMethodInvalid
		}
		state.PaymentMethod = *patch.PaymentMethod
	}
	if patch.UseShippingAsBilling != nil {
		state.UseShippingAsBilling = *patch.UseShippingAsBilling
		if state.UseShippingAsBilling {
			state.BillingAddressID = state.ShippingAddressID
		}
	}
	if patch.BillingAddressID != nil {
		state.BillingAddressID = *patch.BillingAddressID
	}
	if patch.Notes != nil {
		state.Notes = *patch.Notes
	}
	if patch.GuestEmail != nil {
		state.Guest.Email = *patch.GuestEmail
	}
	if patch.GuestName != nil {
		state.Guest.Name = *patch.GuestName
	}
	if patch.GuestPhone != nil {
		state.Guest.Phone = *patch.GuestPhone
	}
	if patch.GuestArea != nil {
		state.Guest.Area = *patch.GuestArea
	}
	if patch.GuestLine != nil {
		state.Guest.Line = *patch.GuestLine
	}
	if patch.GuestLandmark != nil {
		state.Guest.Landmark = *patch.GuestLandmark
	}

	if err := s.states.Save(ctx, identity, state); err != nil {
		return nil, fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return state, nil
}

// SelectAddress implements the address Selection port: the address becomes
// the shipping (and, when mirrored, billing) selection and its zone flag
// seeds the shipping zone.
func (s *CheckoutService) SelectAddress(ctx context.Context, userToken string, addr addressdomain.Address) error {
	identity := sessiondomain.User(userToken)
	if !identity.Valid() {
		return ErrInvalidIdentity
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return err
	}

	state.ShippingAddressID = addr.ID
	if state.UseShippingAsBilling {
		state.BillingAddressID = addr.ID
	}
	s.seedZone(ctx, state, addr)

	if err := s.states.Save(ctx, identity, state); err != nil {
		return fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return nil
}

// SelectAddressByID resolves a saved address and selects it.
func (s *CheckoutService) SelectAddressByID(ctx context.Context, userToken string, id int64) (*domain.State, error) {
	addr, err := s.addresses.Get(ctx, userToken, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch address: %w", err)
	}
	if err := s.SelectAddress(ctx, userToken, *addr); err != nil {
		return nil, err
	}
	return s.loadOrNew(ctx, sessiondomain.User(userToken))
}

// ClearSelection implements the address Selection port: deleting the selected
// shipping address drops the selection (and its mirrored billing reference)
// instead of leaving a dangling id.
func (s *CheckoutService) ClearSelection(ctx context.Context, userToken string, addressID int64) error {
	identity := sessiondomain.User(userToken)
	if !identity.Valid() {
		return ErrInvalidIdentity
	}

	state, err := s.states.Get(ctx, identity)
	if errors.Is(err, ports.ErrStateNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("service: failed to load checkout state: %w", err)
	}

	changed := false
	if state.ShippingAddressID == addressID {
		state.ShippingAddressID = 0
		changed = true
	}
	if state.BillingAddressID == addressID {
		state.BillingAddressID = 0
		changed = true
	}
	if !changed {
		return nil
	}

	if err := s.states.Save(ctx, identity, state); err != nil {
		return fmt.Errorf("service: failed to save checkout state: %w", err)
	}
	return nil
}

// Quote computes the pricing breakdown for the identity's current cart and
// zone. An empty cart returns ErrCartEmpty.
func (s *CheckoutService) Quote(ctx context.Context, identity sessiondomain.Identity) (*domain.Quote, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}

	cart, err := s.carts.GetCart(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return nil, err
	}

	loc, err := s.locations.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load location data: %w", err)
	}

	quote := domain.BuildQuote(cart.Subtotal(), state.Zone, loc.Rates)
	return &quote, nil
}

// Submit validates the form, assembles the order request once, and submits
// it. On success it performs best-effort cleanup; a cleanup failure never
// fails the checkout, the placed order is the source of truth.
func (s *CheckoutService) Submit(ctx context.Context, identity sessiondomain.Identity) (*domain.OrderConfirmation, error) {
	if !identity.Valid() {
		return nil, ErrInvalidIdentity
	}

	state, err := s.loadOrNew(ctx, identity)
	if err != nil {
		return nil, err
	}

	// Validation is local; failures abort before any outbound call.
	if identity.IsGuest() {
		if err := domain.ValidGuestCheckout(state); err != nil {
			return nil, err
		}
	} else {
		if err := domain.ValidAuthenticatedCheckout(state); err != nil {
			return nil, err
		}
	}

	cart, err := s.carts.GetCart(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrCartEmpty
	}

	loc, err := s.locations.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load location data: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	fee := domain.ShippingFee(cart.Subtotal(), state.Zone, loc.Rates)
	reference := uuid.NewString()

	var confirmation *domain.OrderConfirmation
	if identity.IsGuest() {
		addr := domain.OrderAddress{
			Name:     state.Guest.Name,
			Phone:    state.Guest.Phone,
			Area:     state.Guest.Area,
			Line:     state.Guest.Line,
			City:     state.City,
			Landmark: state.Guest.Landmark,
		}
		confirmation, err = s.orders.CreateGuestOrder(ctx, identity.Token, domain.GuestOrderRequest{
			Reference:       reference,
			Items:           items,
			Email:           state.Guest.Email,
			Name:            state.Guest.Name,
			ShippingAddress: addr,
			BillingAddress:  addr,
			ShippingAmount:  fee,
			PaymentMethod:   state.PaymentMethod,
			Notes:           state.Notes,
		})
	} else {
		req := domain.OrderRequest{
			Reference:         reference,
			Items:             items,
			ShippingAddressID: state.ShippingAddressID,
			ShippingAmount:    fee,
			PaymentMethod:     state.PaymentMethod,
			Notes:             state.Notes,
		}
		// Billing id is omitted when it mirrors shipping; the server
		// defaults billing to shipping in that case.
		if !state.UseShippingAsBilling {
			req.BillingAddressID = state.BillingAddressID
		}
		confirmation, err = s.orders.CreateOrder(ctx, identity.Token, req)
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to submit order: %w", err)
	}

	if confirmation.DetailPath == "" {
		confirmation.DetailPath = "/orders/" + confirmation.OrderNumber
	}

	s.cleanup(ctx, identity)
	return confirmation, nil
}

// cleanup runs the post-order housekeeping: clear the cart, drop the checkout
// state, and for guests discard the session token so the next visit starts
// fresh. Every step is best-effort and only logged on failure.
func (s *CheckoutService) cleanup(ctx context.Context, identity sessiondomain.Identity) {
	if err := s.carts.ClearCart(ctx, identity); err != nil {
		logger.Get().Warn("Failed to clear cart after successful order",
			zap.String("identity", identity.Key()),
			zap.Error(err),
		)
	}
	if err := s.states.Delete(ctx, identity); err != nil {
		logger.Get().Warn("Failed to delete checkout state after successful order",
			zap.String("identity", identity.Key()),
			zap.Error(err),
		)
	}
	if identity.IsGuest() {
		if err := s.sessions.Discard(ctx, identity.Token); err != nil {
			logger.Get().Warn("Failed to discard guest session after successful order",
				zap.Error(err),
			)
		}
	}
}

// loadOrNew loads the identity's state, falling back to the initial state.
func (s *CheckoutService) loadOrNew(ctx context.Context, identity sessiondomain.Identity) (*domain.State, error) {
	state, err := s.states.Get(ctx, identity)
	if errors.Is(err, ports.ErrStateNotFound) {
		return domain.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("service: failed to load checkout state: %w", err)
	}
	return state, nil
}

// seedFromDefaultAddress selects the user's default saved address and derives
// the zone from it. Failures leave the state unseeded; the page is still
// usable and the user can select an address explicitly.
func (s *CheckoutService) seedFromDefaultAddress(ctx context.Context, identity sessiondomain.Identity, state *domain.State) {
	addresses, err := s.addresses.List(ctx, identity.Token)
	if err != nil {
		logger.Get().Warn("Failed to list addresses for zone seeding", zap.Error(err))
		return
	}

	for _, addr := range addresses {
		if !addr.IsDefault {
			continue
		}
		state.ShippingAddressID = addr.ID
		if state.UseShippingAsBilling {
			state.BillingAddressID = addr.ID
		}
		s.seedZone(ctx, state, addr)
		return
	}
}

// seedZone derives the zone tuple from an address. When location data is
// unavailable the zone and city are still set; area options refresh on the
// next successful load.
func (s *CheckoutService) seedZone(ctx context.Context, state *domain.State, addr addressdomain.Address) {
	loc, err := s.locations.Locations(ctx)
	if err != nil {
		logger.Get().Warn("Failed to load location data for zone seeding", zap.Error(err))
		if addr.InsideMetro {
			state.Zone = domain.ZoneInside
		} else {
			state.Zone = domain.ZoneOutside
		}
		state.City = addr.City
		return
	}
	state.SetZoneState(domain.SeedFromAddress(addr.InsideMetro, addr.City, *loc))
}
