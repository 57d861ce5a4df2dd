package domain

// RateTable holds the flat shipping rates and the free-shipping threshold.
// Amounts are in currency units, matching the cart subtotal.
type RateTable struct {
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold int64 `json:"free_shipping_threshold"`
	// InsideRate is the flat rate for the metro zone.
	InsideRate int64 `json:"inside_rate"`
	// OutsideRate is the flat rate for everywhere else.
	OutsideRate int64 `json:"outside_rate"`
}

// IsZero reports whether the table carries no rates at all.
func (r RateTable) IsZero() bool {
	return r == RateTable{}
}

// DefaultRates returns the standard rate table used when the remote location
// data does not carry one.
func DefaultRates() RateTable {
	return RateTable{
		FreeShippingThreshold: 1000,
		InsideRate:            60,
		OutsideRate:           120,
	}
}

// ShippingFee derives the shipping cost from subtotal and zone. At or above
// the free-shipping threshold shipping is free regardless of zone. An unset
// zone deliberately charges the outside rate.
func ShippingFee(subtotal int64, zone Zone, rates RateTable) int64 {
	if subtotal >= rates.FreeShippingThreshold {
		return 0
	}
	if zone == ZoneInside {
		return rates.InsideRate
	}
	return rates.OutsideRate
}

// OrderTotal is subtotal plus shipping. Tax is always zero in this flow;
// the commerce API owns pricing authority.
func OrderTotal(subtotal int64, zone Zone, rates RateTable) int64 {
	return subtotal + ShippingFee(subtotal, zone, rates)
}

// DeliveryEstimate returns the human-readable delivery window for a zone.
func DeliveryEstimate(zone Zone) string {
	if zone == ZoneInside {
		return "1-2 business days"
	}
	return "3-5 business days"
}

// Quote is a display-ready pricing breakdown for the current cart and zone.
type Quote struct {
	// Subtotal is the cart subtotal the derivation starts from.
	Subtotal int64 `json:"subtotal"`
	// ShippingFee is the derived shipping cost.
	ShippingFee int64 `json:"shipping_fee"`
	// Total is subtotal plus shipping.
	Total int64 `json:"total"`
	// DeliveryEstimate is the delivery window for the zone.
	DeliveryEstimate string `json:"delivery_estimate"`
	// Zone is the zone the quote was computed for.
	Zone Zone `json:"zone"`
}

// BuildQuote computes the full pricing breakdown for a subtotal and zone.
func BuildQuote(subtotal int64, zone Zone, rates RateTable) Quote {
	fee := ShippingFee(subtotal, zone, rates)
	return Quote{
		Subtotal:         subtotal,
		ShippingFee:      fee,
		Total:            subtotal + fee,
		DeliveryEstimate: DeliveryEstimate(zone),
		Zone:             zone,
	}
}
