package service

import (
	"context"
	"errors"
	"testing"

	addressdomain "checkout-gateway/internal/features/address/domain"
	cartdomain "checkout-gateway/internal/features/cart/domain"
	"checkout-gateway/internal/features/checkout/domain"
	"checkout-gateway/internal/features/checkout/ports"
	sessiondomain "checkout-gateway/internal/features/session/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStateRepository is an in-memory implementation of ports.StateRepository.
type memStateRepository struct {
	states    map[string]*domain.State
	saveErr   error
	deleteErr error
}

func newMemStateRepository() *memStateRepository {
	return &memStateRepository{states: map[string]*domain.State{}}
}

func (m *memStateRepository) Get(ctx context.Context, identity sessiondomain.Identity) (*domain.State, error) {
	state, ok := m.states[identity.Key()]
	if !ok {
		return nil, ports.ErrStateNotFound
	}
	copied := *state
	return &copied, nil
}

func (m *memStateRepository) Save(ctx context.Context, identity sessiondomain.Identity, state *domain.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *state
	m.states[identity.Key()] = &copied
	return nil
}

func (m *memStateRepository) Delete(ctx context.Context, identity sessiondomain.Identity) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.states, identity.Key())
	return nil
}

// stubLocations is a fixed-payload implementation of ports.LocationProvider.
type stubLocations struct {
	err error
}

func (s *stubLocations) Locations(ctx context.Context) (*domain.LocationData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.LocationData{
		MetroCity:      "Dhaka",
		MetroAreas:     []string{"Dhanmondi", "Gulshan"},
		SuburbanAreas:  []string{"Savar"},
		OtherCities:    []string{"Chattogram"},
		OtherCityAreas: []string{"Agrabad"},
		Rates:          domain.DefaultRates(),
	}, nil
}

// mockOrders records submitted orders.
type mockOrders struct {
	lastOrder      *domain.OrderRequest
	lastGuestOrder *domain.GuestOrderRequest
	err            error
}

func (m *mockOrders) CreateOrder(ctx context.Context, userToken string, req domain.OrderRequest) (*domain.OrderConfirmation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastOrder = &req
	return &domain.OrderConfirmation{OrderNumber: "ORD-1001"}, nil
}

func (m *mockOrders) CreateGuestOrder(ctx context.Context, sessionToken string, req domain.GuestOrderRequest) (*domain.OrderConfirmation, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastGuestOrder = &req
	return &domain.OrderConfirmation{OrderNumber: "ORD-1002"}, nil
}

// mockCarts serves a fixed cart and records clears.
type mockCarts struct {
	cart     *cartdomain.Cart
	cleared  []string
	clearErr error
}

func (m *mockCarts) GetCart(ctx context.Context, identity sessiondomain.Identity) (*cartdomain.Cart, error) {
	return m.cart, nil
}

func (m *mockCarts) ClearCart(ctx context.Context, identity sessiondomain.Identity) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = append(m.cleared, identity.Key())
	return nil
}

// mockSessions records discarded guest tokens.
type mockSessions struct {
	discarded []string
}

func (m *mockSessions) Resolve(ctx context.Context, userToken, guestToken string) (sessiondomain.Identity, bool, error) {
	return sessiondomain.Guest(guestToken), false, nil
}

func (m *mockSessions) Discard(ctx context.Context, token string) error {
	m.discarded = append(m.discarded, token)
	return nil
}

// mockAddresses serves a fixed saved-address list.
type mockAddresses struct {
	addresses []addressdomain.Address
}

func (m *mockAddresses) List(ctx context.Context, userToken string) ([]addressdomain.Address, error) {
	return m.addresses, nil
}

func (m *mockAddresses) Get(ctx context.Context, userToken string, id int64) (*addressdomain.Address, error) {
	for _, a := range m.addresses {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockAddresses) Create(ctx context.Context, userToken string, input addressdomain.Input) (*addressdomain.Address, error) {
	return nil, errors.New("unused")
}

func (m *mockAddresses) Update(ctx context.Context, userToken string, id int64, input addressdomain.Input) (*addressdomain.Address, error) {
	return nil, errors.New("unused")
}

func (m *mockAddresses) Delete(ctx context.Context, userToken string, id int64) error {
	return errors.New("unused")
}

type fixture struct {
	svc      *CheckoutService
	states   *memStateRepository
	orders   *mockOrders
	carts    *mockCarts
	sessions *mockSessions
}

func newFixture() *fixture {
	return newFixtureWith(&mockCarts{cart: &cartdomain.Cart{
		Items: []cartdomain.CartItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 250, Subtotal: 500},
		},
		TotalAmount: 500,
	}}, &mockAddresses{})
}

func newFixtureWith(carts *mockCarts, addresses *mockAddresses) *fixture {
	states := newMemStateRepository()
	orders := &mockOrders{}
	sessions := &mockSessions{}
	return &fixture{
		svc:      NewCheckoutService(states, &stubLocations{}, orders, carts, sessions, addresses),
		states:   states,
		orders:   orders,
		carts:    carts,
		sessions: sessions,
	}
}

func validGuestState() *domain.State {
	s := domain.NewState()
	s.Zone = domain.ZoneInside
	s.City = "Dhaka"
	s.Guest = domain.GuestDetails{
		Email: "user@example.com",
		Name:  "Rahim",
		Phone: "01812345678",
		Area:  "Dhanmondi",
		Line:  "House 12, Road 5",
	}
	return s
}

func TestGetState_GuestStartsUnset(t *testing.T) {
	f := newFixture()

	state, err := f.svc.GetState(context.Background(), sessiondomain.Guest("guest_abc"))
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneUnset, state.Zone)
	assert.True(t, state.UseShippingAsBilling)
	assert.Equal(t, domain.PaymentCOD, state.PaymentMethod)
}

func TestGetState_SeedsFromDefaultAddress(t *testing.T) {
	f := newFixtureWith(&mockCarts{cart: &cartdomain.Cart{}}, &mockAddresses{addresses: []addressdomain.Address{
		{ID: 1, City: "Sylhet", InsideMetro: false},
		{ID: 2, City: "Dhaka", InsideMetro: true, IsDefault: true},
	}})

	state, err := f.svc.GetState(context.Background(), sessiondomain.User("user-tok"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), state.ShippingAddressID)
	assert.Equal(t, int64(2), state.BillingAddressID)
	assert.Equal(t, domain.ZoneInside, state.Zone)
	assert.Equal(t, "Dhaka", state.City)
}

func TestApplyZoneEvent_RejectedForAuthenticated(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ApplyZoneEvent(context.Background(), sessiondomain.User("user-tok"), domain.ManualToggle{Zone: domain.ZoneInside})
	assert.ErrorIs(t, err, ErrZoneEventNotAllowed)
}

func TestApplyZoneEvent_GuestCityDerivation(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.Guest("guest_abc")

	state, err := f.svc.ApplyZoneEvent(context.Background(), identity, domain.CityChanged{City: "Chattogram"})
	require.NoError(t, err)
	assert.Equal(t, domain.ZoneOutside, state.Zone)
	assert.Equal(t, "Chattogram", state.City)

	state, err = f.svc.ApplyZoneEvent(context.Background(), identity, domain.ManualToggle{Zone: domain.ZoneInside})
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", state.City, "entering the metro overwrites the city")
	assert.Equal(t, []string{"Dhanmondi", "Gulshan"}, state.AreaOptions)
}

func TestUpdateState_PatchesFields(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.Guest("guest_abc")

	email := "user@example.com"
	notes := "leave at the gate"
	method := domain.PaymentMobileBanking
	state, err := f.svc.UpdateState(context.Background(), identity, StatePatch{
		GuestEmail:    &email,
		Notes:         &notes,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, email, state.Guest.Email)
	assert.Equal(t, notes, state.Notes)
	assert.Equal(t, method, state.PaymentMethod)
}

func TestUpdateState_RejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture()

	bad := domain.PaymentMethod("barter")
	_, err := f.svc.UpdateState(context.Background(), sessiondomain.Guest("guest_abc"), StatePatch{PaymentMethod: &bad})
	assert.ErrorIs(t, err, domain.ErrPaymentMethodInvalid)
}

func TestSelectAddress_SetsSelectionAndSeedsZone(t *testing.T) {
	f := newFixture()

	err := f.svc.SelectAddress(context.Background(), "user-tok", addressdomain.Address{
		ID: 7, City: "Sylhet", InsideMetro: false,
	})
	require.NoError(t, err)

	state, err := f.svc.GetState(context.Background(), sessiondomain.User("user-tok"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), state.ShippingAddressID)
	assert.Equal(t, int64(7), state.BillingAddressID, "billing mirrors shipping by default")
	assert.Equal(t, domain.ZoneOutside, state.Zone)
	assert.Equal(t, "Sylhet", state.City)
}

func TestClearSelection_DropsShippingAndMirroredBilling(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.SelectAddress(context.Background(), "user-tok", addressdomain.Address{ID: 7, InsideMetro: true}))

	require.NoError(t, f.svc.ClearSelection(context.Background(), "user-tok", 7))

	state, err := f.svc.GetState(context.Background(), sessiondomain.User("user-tok"))
	require.NoError(t, err)
	assert.Zero(t, state.ShippingAddressID)
	assert.Zero(t, state.BillingAddressID)
}

func TestClearSelection_IgnoresUnrelatedAddress(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.SelectAddress(context.Background(), "user-tok", addressdomain.Address{ID: 7, InsideMetro: true}))

	require.NoError(t, f.svc.ClearSelection(context.Background(), "user-tok", 99))

	state, err := f.svc.GetState(context.Background(), sessiondomain.User("user-tok"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), state.ShippingAddressID)
}

func TestQuote_InsideZone(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.Guest("guest_abc")

	_, err := f.svc.ApplyZoneEvent(context.Background(), identity, domain.ManualToggle{Zone: domain.ZoneInside})
	require.NoError(t, err)

	quote, err := f.svc.Quote(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, int64(500), quote.Subtotal)
	assert.Equal(t, int64(60), quote.ShippingFee)
	assert.Equal(t, int64(560), quote.Total)
	assert.Equal(t, "1-2 business days", quote.DeliveryEstimate)
}

func TestQuote_EmptyCart(t *testing.T) {
	f := newFixtureWith(&mockCarts{cart: &cartdomain.Cart{}}, &mockAddresses{})

	_, err := f.svc.Quote(context.Background(), sessiondomain.Guest("guest_abc"))
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestSubmit_GuestSuccessRunsCleanup(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.Guest("guest_abc")
	require.NoError(t, f.states.Save(context.Background(), identity, validGuestState()))

	confirmation, err := f.svc.Submit(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1002", confirmation.OrderNumber)
	assert.Equal(t, "/orders/ORD-1002", confirmation.DetailPath)

	require.NotNil(t, f.orders.lastGuestOrder)
	assert.Equal(t, int64(60), f.orders.lastGuestOrder.ShippingAmount)
	assert.Zero(t, f.orders.lastGuestOrder.Tax)
	assert.Zero(t, f.orders.lastGuestOrder.Discount)
	assert.Equal(t, "Dhaka", f.orders.lastGuestOrder.ShippingAddress.City)
	assert.NotEmpty(t, f.orders.lastGuestOrder.Reference)

	assert.Equal(t, []string{identity.Key()}, f.carts.cleared)
	assert.Equal(t, []string{"guest_abc"}, f.sessions.discarded)
	_, err = f.states.Get(context.Background(), identity)
	assert.ErrorIs(t, err, ports.ErrStateNotFound)
}

func TestSubmit_GuestValidationBlocksBeforeNetwork(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.Guest("guest_abc")
	state := validGuestState()
	state.Guest.Phone = "123456"
	require.NoError(t, f.states.Save(context.Background(), identity, state))

	_, err := f.svc.Submit(context.Background(), identity)
	assert.ErrorIs(t, err, domain.ErrPhoneInvalid)
	assert.Nil(t, f.orders.lastGuestOrder, "no outbound call on validation failure")
	assert.Empty(t, f.carts.cleared, "no cleanup on failure")
}

func TestSubmit_FailedCartClearStillSucceeds(t *testing.T) {
	carts := &mockCarts{
		cart: &cartdomain.Cart{
			Items:       []cartdomain.CartItem{{ProductID: "p1", Quantity: 1, Subtotal: 500}},
			TotalAmount: 500,
		},
		clearErr: errors.New("cart api down"),
	}
	f := newFixtureWith(carts, &mockAddresses{})
	identity := sessiondomain.Guest("guest_abc")
	require.NoError(t, f.states.Save(context.Background(), identity, validGuestState()))

	confirmation, err := f.svc.Submit(context.Background(), identity)
	require.NoError(t, err, "the placed order is the source of truth")
	assert.Equal(t, "ORD-1002", confirmation.OrderNumber)
	assert.Equal(t, []string{"guest_abc"}, f.sessions.discarded, "remaining cleanup still runs")
}

func TestSubmit_AuthenticatedOmitsMirroredBilling(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.User("user-tok")
	state := domain.NewState()
	state.Zone = domain.ZoneInside
	state.ShippingAddressID = 7
	state.BillingAddressID = 7
	require.NoError(t, f.states.Save(context.Background(), identity, state))

	_, err := f.svc.Submit(context.Background(), identity)
	require.NoError(t, err)
	require.NotNil(t, f.orders.lastOrder)
	assert.Equal(t, int64(7), f.orders.lastOrder.ShippingAddressID)
	assert.Zero(t, f.orders.lastOrder.BillingAddressID, "server defaults billing to shipping")
	assert.Equal(t, []string{identity.Key()}, f.carts.cleared)
	assert.Empty(t, f.sessions.discarded, "no token discard for signed-in users")
}

func TestSubmit_AuthenticatedDistinctBilling(t *testing.T) {
	f := newFixture()
	identity := sessiondomain.User("user-tok")
	state := domain.NewState()
	state.Zone = domain.ZoneInside
	state.ShippingAddressID = 7
	state.UseShippingAsBilling = false
	state.BillingAddressID = 9
	require.NoError(t, f.states.Save(context.Background(), identity, state))

	_, err := f.svc.Submit(context.Background(), identity)
	require.NoError(t, err)
	assert.Equal(t, int64(9), f.orders.lastOrder.BillingAddressID)
}

func TestSubmit_ServerFailureLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	f.orders.err = errors.New("order api down")
	identity := sessiondomain.Guest("guest_abc")
	require.NoError(t, f.states.Save(context.Background(), identity, validGuestState()))

	_, err := f.svc.Submit(context.Background(), identity)
	require.Error(t, err)
	assert.Empty(t, f.carts.cleared)
	assert.Empty(t, f.sessions.discarded)
	_, err = f.states.Get(context.Background(), identity)
	assert.NoError(t, err, "form stays editable after a failed submission")
}
