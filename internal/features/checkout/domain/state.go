package domain

// PaymentMethod is the fixed set of payment choices.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery.
	PaymentCOD PaymentMethod = "cod"
	// PaymentCard is card payment.
	PaymentCard PaymentMethod = "card"
	// PaymentMobileBanking is a mobile financial service payment.
	PaymentMobileBanking PaymentMethod = "mobile_banking"
)

// Valid reports whether the method is one of the supported choices.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCOD, PaymentCard, PaymentMobileBanking:
		return true
	}
	return false
}

// GuestDetails are the inline contact and address fields a guest fills in
// instead of selecting a saved address. They are embedded directly into the
// order request, never persisted as a standalone address.
type GuestDetails struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Area     string `json:"area"`
	Line     string `json:"line"`
	Landmark string `json:"landmark"`
}

// State is the checkout form state for one identity: the single shared
// mutable resource of the flow. It is mutated only by explicit operations,
// never concurrently.
type State struct {
	Zone        Zone     `json:"zone"`
	City        string   `json:"city"`
	AreaOptions []string `json:"area_options"`
	// ShippingAddressID and BillingAddressID are saved-address selections,
	// 0 when none.
	ShippingAddressID int64 `json:"shipping_address_id"`
	BillingAddressID  int64 `json:"billing_address_id"`
	// UseShippingAsBilling mirrors billing to the shipping selection.
	UseShippingAsBilling bool          `json:"use_shipping_as_billing"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	Notes                string        `json:"notes"`
	// Guest is zero-valued for authenticated users.
	Guest GuestDetails `json:"guest"`
}

// NewState returns the initial checkout state: no zone chosen, billing
// mirroring shipping, cash on delivery preselected.
func NewState() *State {
	return &State{
		UseShippingAsBilling: true,
		PaymentMethod:        PaymentCOD,
	}
}

// ZoneState extracts the zone tuple for the reducer.
func (s *State) ZoneState() ZoneState {
	return ZoneState{Zone: s.Zone, City: s.City, AreaOptions: s.AreaOptions}
}

// SetZoneState writes a reducer result back into the form state.
func (s *State) SetZoneState(zs ZoneState) {
	s.Zone = zs.Zone
	s.City = zs.City
	s.AreaOptions = zs.AreaOptions
}

// OrderAddress is an address embedded into a guest order request.
type OrderAddress struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Area     string `json:"area"`
	Line     string `json:"line"`
	City     string `json:"city"`
	Landmark string `json:"landmark,omitempty"`
}

// ShippingTarget is the resolved destination of an order: a saved address id
// for authenticated users, or an inline address for guests. It is resolved
// exactly once, before submission.
type ShippingTarget struct {
	savedID int64
	inline  *OrderAddress
}

// SavedAddress builds a target referencing a saved address id.
func SavedAddress(id int64) ShippingTarget {
	return ShippingTarget{savedID: id}
}

// InlineAddress builds a target carrying an embedded address.
func InlineAddress(addr OrderAddress) ShippingTarget {
	return ShippingTarget{inline: &addr}
}

// Saved returns the saved address id, if the target references one.
func (t ShippingTarget) Saved() (int64, bool) {
	return t.savedID, t.savedID != 0
}

// Inline returns the embedded address, if the target carries one.
func (t ShippingTarget) Inline() (*OrderAddress, bool) {
	return t.inline, t.inline != nil
}

// OrderItem is one cart line carried into the order request.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// OrderRequest is the outbound order for an authenticated user. It is built
// once per submission and never mutated afterward; order state transitions
// belong to the commerce API.
type OrderRequest struct {
	// Reference is a client-generated idempotency reference.
	Reference         string      `json:"reference"`
	Items             []OrderItem `json:"items"`
	ShippingAddressID int64       `json:"shipping_address_id"`
	// BillingAddressID is omitted when billing mirrors shipping; the server
	// defaults it in that case.
	BillingAddressID int64         `json:"billing_address_id,omitempty"`
	ShippingAmount   int64         `json:"shipping_amount"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	Notes            string        `json:"notes,omitempty"`
}

// GuestOrderRequest is the outbound order for a guest session. Addresses are
// embedded rather than referenced, and tax and discount are always zero.
type GuestOrderRequest struct {
	// Reference is a client-generated idempotency reference.
	Reference       string       `json:"reference"`
	Items           []OrderItem  `json:"items"`
	Email           string       `json:"email"`
	Name            string       `json:"name"`
	ShippingAddress OrderAddress `json:"shipping_address"`
	BillingAddress  OrderAddress `json:"billing_address"`
	ShippingAmount  int64        `json:"shipping_amount"`
	// Tax and Discount are always zero; pricing authority is server-side.
	Tax           int64         `json:"tax"`
	Discount      int64         `json:"discount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes,omitempty"`
}

// OrderConfirmation is the server's acknowledgement of a placed order.
type OrderConfirmation struct {
	OrderNumber string `json:"order_number"`
	DetailPath  string `json:"detail_path,omitempty"`
}
