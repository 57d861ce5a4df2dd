package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validGuestState() *State {
	s := NewState()
	s.Zone = ZoneInside
	s.City = "Dhaka"
	s.Guest = GuestDetails{
		Email: "user@example.com",
		Name:  "Rahim",
		Phone: "01812345678",
		Area:  "Dhanmondi",
		Line:  "House 12, Road 5",
	}
	return s
}

// TestValidGuestCheckout_Passes verifies a fully filled form is accepted.
func TestValidGuestCheckout_Passes(t *testing.T) {
	assert.NoError(t, ValidGuestCheckout(validGuestState()))
}

// TestValidGuestCheckout_Phone verifies the local mobile number shape.
func TestValidGuestCheckout_Phone(t *testing.T) {
	s := validGuestState()

	s.Guest.Phone = "123456"
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrPhoneInvalid)

	s.Guest.Phone = "01212345678"
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrPhoneInvalid, "second digit must be 3-9")

	s.Guest.Phone = "018123456789"
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrPhoneInvalid, "12 digits is too long")

	s.Guest.Phone = ""
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrPhoneRequired)

	s.Guest.Phone = "01812345678"
	assert.NoError(t, ValidGuestCheckout(s))
}

// TestValidGuestCheckout_Email verifies the email shape check.
func TestValidGuestCheckout_Email(t *testing.T) {
	s := validGuestState()

	s.Guest.Email = "not-an-email"
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrEmailInvalid)

	s.Guest.Email = ""
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrEmailRequired)

	s.Guest.Email = "user@example.com"
	assert.NoError(t, ValidGuestCheckout(s))
}

// TestValidGuestCheckout_RemainingFields walks the other required fields.
func TestValidGuestCheckout_RemainingFields(t *testing.T) {
	s := validGuestState()
	s.Zone = ZoneUnset
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrZoneRequired)

	s = validGuestState()
	s.Guest.Name = ""
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrNameRequired)

	s = validGuestState()
	s.Guest.Area = ""
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrAreaRequired)

	s = validGuestState()
	s.Guest.Line = ""
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrAddressLineRequired)

	s = validGuestState()
	s.PaymentMethod = "barter"
	assert.ErrorIs(t, ValidGuestCheckout(s), ErrPaymentMethodInvalid)
}

// TestValidAuthenticatedCheckout verifies the saved-address requirements.
func TestValidAuthenticatedCheckout(t *testing.T) {
	s := NewState()
	assert.ErrorIs(t, ValidAuthenticatedCheckout(s), ErrShippingAddressRequired)

	s.ShippingAddressID = 7
	assert.NoError(t, ValidAuthenticatedCheckout(s))

	s.UseShippingAsBilling = false
	assert.ErrorIs(t, ValidAuthenticatedCheckout(s), ErrBillingAddressRequired)

	s.BillingAddressID = 9
	assert.NoError(t, ValidAuthenticatedCheckout(s))
}
