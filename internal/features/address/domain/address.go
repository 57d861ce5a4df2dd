package domain

// Address represents a saved shipping/billing address of an authenticated
// user. The remote commerce API owns the record; this is a transient copy.
type Address struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Area      string `json:"area"`
	Line      string `json:"address_line"`
	City      string `json:"city"`
	Landmark  string `json:"landmark,omitempty"`
	IsDefault bool   `json:"is_default"`
	// InsideMetro is the zone flag the checkout seeds the shipping zone from.
	InsideMetro bool `json:"inside_metro"`
}

// Input captures the fields of the address create/edit sub-form.
type Input struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Area        string `json:"area"`
	Line        string `json:"address_line"`
	City        string `json:"city"`
	Landmark    string `json:"landmark,omitempty"`
	IsDefault   bool   `json:"is_default"`
	InsideMetro bool   `json:"inside_metro"`
}
