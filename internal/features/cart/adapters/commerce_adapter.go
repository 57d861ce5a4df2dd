package adapters

import (
	"context"
	"fmt"

	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/features/cart/domain"
	sessiondomain "checkout-gateway/internal/features/session/domain"
)

// CommerceCartAdapter implements the cart Provider port using the remote
// commerce API. Authenticated carts are addressed by bearer token, guest
// carts by session token.
type CommerceCartAdapter struct {
	client *commerce.Client
}

// NewCommerceCartAdapter creates a new CommerceCartAdapter.
func NewCommerceCartAdapter(client *commerce.Client) *CommerceCartAdapter {
	return &CommerceCartAdapter{
		client: client,
	}
}

// cartPayload represents the cart JSON returned by the commerce API.
type cartPayload struct {
	Items         []cartItemPayload `json:"items"`
	TotalAmount   int64             `json:"total_amount"`
	TotalDiscount int64             `json:"total_discount"`
}

// cartItemPayload represents a cart line in the commerce API response.
type cartItemPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
	InStock   bool   `json:"in_stock"`
}

// GetCart fetches the current cart and maps it to the domain entity.
func (a *CommerceCartAdapter) GetCart(ctx context.Context, identity sessiondomain.Identity) (*domain.Cart, error) {
	var payload cartPayload

	var err error
	if identity.IsGuest() {
		err = a.client.Get(ctx, "/api/v1/guest/cart", &payload,
			commerce.WithQuery("session_token", identity.Token))
	} else {
		err = a.client.Get(ctx, "/api/v1/cart", &payload,
			commerce.WithBearer(identity.Token))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	return mapToDomain(payload), nil
}

// ClearCart removes every line from the identity's cart.
func (a *CommerceCartAdapter) ClearCart(ctx context.Context, identity sessiondomain.Identity) error {
	var err error
	if identity.IsGuest() {
		err = a.client.Delete(ctx, "/api/v1/guest/cart",
			commerce.WithQuery("session_token", identity.Token))
	} else {
		err = a.client.Delete(ctx, "/api/v1/cart",
			commerce.WithBearer(identity.Token))
	}
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// mapToDomain converts a raw commerce cart response into a domain Cart.
func mapToDomain(payload cartPayload) *domain.Cart {
	items := make([]domain.CartItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, domain.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
			InStock:   item.InStock,
		})
	}

	return &domain.Cart{
		Items:         items,
		TotalAmount:   payload.TotalAmount,
		TotalDiscount: payload.TotalDiscount,
	}
}
