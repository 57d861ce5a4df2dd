package domain

import "regexp"

// ValidationError is a pre-submission rejection with a specific user-facing
// message. Validation runs locally; no network call is made on failure.
type ValidationError struct {
	msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

// One sentinel per failure mode; "invalid form" with no specifics is not an
// acceptable outcome.
var (
	ErrShippingAddressRequired = &ValidationError{"Select a shipping address"}
	ErrBillingAddressRequired  = &ValidationError{"Select a billing address"}
	ErrEmailRequired           = &ValidationError{"Email is required"}
	ErrEmailInvalid            = &ValidationError{"Enter a valid email address"}
	ErrZoneRequired            = &ValidationError{"Select a delivery zone"}
	ErrNameRequired            = &ValidationError{"Name is required"}
	ErrPhoneRequired           = &ValidationError{"Phone number is required"}
	ErrPhoneInvalid            = &ValidationError{"Enter a valid 11-digit mobile number starting with 01"}
	ErrAreaRequired            = &ValidationError{"Select a delivery area"}
	ErrAddressLineRequired     = &ValidationError{"Address line is required"}
	ErrPaymentMethodInvalid    = &ValidationError{"Select a valid payment method"}
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Local mobile numbers: 11 digits, 01 then a digit in 3-9.
	phonePattern = regexp.MustCompile(`^01[3-9]\d{8}$`)
)

// ValidAuthenticatedCheckout checks an authenticated submission: a saved
// shipping address must be selected, plus a distinct billing address unless
// billing mirrors shipping.
func ValidAuthenticatedCheckout(s *State) error {
	if s.ShippingAddressID == 0 {
		return ErrShippingAddressRequired
	}
	if !s.UseShippingAsBilling && s.BillingAddressID == 0 {
		return ErrBillingAddressRequired
	}
	if !s.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}
	return nil
}

// ValidGuestCheckout checks a guest submission: contact details, a resolved
// zone, and the inline address fields must all be present and shaped.
func ValidGuestCheckout(s *State) error {
	if s.Guest.Email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(s.Guest.Email) {
		return ErrEmailInvalid
	}
	if !s.Zone.Valid() {
		return ErrZoneRequired
	}
	if s.Guest.Name == "" {
		return ErrNameRequired
	}
	if s.Guest.Phone == "" {
		return ErrPhoneRequired
	}
	if !phonePattern.MatchString(s.Guest.Phone) {
		return ErrPhoneInvalid
	}
	if s.Guest.Area == "" {
		return ErrAreaRequired
	}
	if s.Guest.Line == "" {
		return ErrAddressLineRequired
	}
	if !s.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}
	return nil
}
