package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestShippingFee_FreeAboveThreshold verifies shipping is free at and above
// the threshold for every zone.
func TestShippingFee_FreeAboveThreshold(t *testing.T) {
	rates := DefaultRates()

	for _, zone := range []Zone{ZoneInside, ZoneOutside, ZoneUnset} {
		assert.Zero(t, ShippingFee(1000, zone, rates))
		assert.Zero(t, ShippingFee(1500, zone, rates))
	}
}

// TestShippingFee_FlatRatesBelowThreshold verifies the flat zone rates, with
// an unset zone charged the outside rate.
func TestShippingFee_FlatRatesBelowThreshold(t *testing.T) {
	rates := DefaultRates()

	assert.Equal(t, int64(60), ShippingFee(999, ZoneInside, rates))
	assert.Equal(t, int64(120), ShippingFee(999, ZoneOutside, rates))
	assert.Equal(t, int64(120), ShippingFee(999, ZoneUnset, rates))
}

// TestOrderTotal verifies total is always subtotal plus shipping.
func TestOrderTotal(t *testing.T) {
	rates := DefaultRates()

	for _, tc := range []struct {
		subtotal int64
		zone     Zone
		total    int64
	}{
		{500, ZoneInside, 560},
		{500, ZoneOutside, 620},
		{500, ZoneUnset, 620},
		{1500, ZoneOutside, 1500},
		{1000, ZoneInside, 1000},
	} {
		assert.Equal(t, tc.total, OrderTotal(tc.subtotal, tc.zone, rates))
	}
}

// TestDeliveryEstimate verifies the per-zone delivery windows.
func TestDeliveryEstimate(t *testing.T) {
	assert.Equal(t, "1-2 business days", DeliveryEstimate(ZoneInside))
	assert.Equal(t, "3-5 business days", DeliveryEstimate(ZoneOutside))
	assert.Equal(t, "3-5 business days", DeliveryEstimate(ZoneUnset))
}

// TestBuildQuote_InsideScenario covers subtotal 500 inside the metro.
func TestBuildQuote_InsideScenario(t *testing.T) {
	q := BuildQuote(500, ZoneInside, DefaultRates())

	assert.Equal(t, int64(60), q.ShippingFee)
	assert.Equal(t, int64(560), q.Total)
	assert.Equal(t, "1-2 business days", q.DeliveryEstimate)
}

// TestBuildQuote_OutsideFreeShipping covers subtotal 1500 outside the metro.
func TestBuildQuote_OutsideFreeShipping(t *testing.T) {
	q := BuildQuote(1500, ZoneOutside, DefaultRates())

	assert.Zero(t, q.ShippingFee)
	assert.Equal(t, int64(1500), q.Total)
	assert.Equal(t, "3-5 business days", q.DeliveryEstimate)
}
