package domain

// CartItem represents a single line in a cart.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	// Subtotal is the line subtotal after line discounts.
	Subtotal int64 `json:"subtotal"`
	InStock  bool  `json:"in_stock"`
}

// Cart represents the current cart for a session identity.
// The remote commerce API owns the cart; this is a transient copy.
type Cart struct {
	Items []CartItem `json:"items"`
	// TotalAmount and TotalDiscount are server-computed aggregates.
	TotalAmount   int64 `json:"total_amount"`
	TotalDiscount int64 `json:"total_discount"`
}

// ItemCount returns the display-ready count of units in the cart.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines. An empty cart is a valid
// terminal state that short-circuits checkout, not an error.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal returns the amount pricing derivations start from. The server
// aggregate is the authority; line subtotals are only a fallback.
func (c *Cart) Subtotal() int64 {
	if c.TotalAmount > 0 {
		return c.TotalAmount
	}
	var sum int64
	for _, item := range c.Items {
		sum += item.Subtotal
	}
	return sum
}
