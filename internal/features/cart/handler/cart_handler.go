package handler

import (
	"errors"
	"net/http"

	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/cart/domain"
	"checkout-gateway/internal/features/cart/service"
	sessiondomain "checkout-gateway/internal/features/session/domain"
	sessionhandler "checkout-gateway/internal/features/session/handler"
	sessionports "checkout-gateway/internal/features/session/ports"
	sessionservice "checkout-gateway/internal/features/session/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for cart retrieval.
type CartHandler struct {
	service  *service.CartService
	resolver sessionports.Resolver
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(s *service.CartService, resolver sessionports.Resolver) *CartHandler {
	return &CartHandler{
		service:  s,
		resolver: resolver,
	}
}

// CartResponse is the display-ready cart representation.
type CartResponse struct {
	// Items is the ordered collection of cart lines.
	Items []domain.CartItem `json:"items"`
	// TotalAmount is the server-computed cart subtotal.
	TotalAmount int64 `json:"total_amount"`
	// TotalDiscount is the server-computed discount across the cart.
	TotalDiscount int64 `json:"total_discount"`
	// ItemCount is the display-ready count of units.
	ItemCount int `json:"item_count"`
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// GetCart handles GET /cart.
// @Summary Get the current cart
// @Description Retrieves the cart for the authenticated user or guest session. A guest session is created lazily when neither identity is presented.
// @Tags cart
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Guest-Session header string false "Guest session token"
// @Success 200 {object} CartResponse
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userToken, guestToken := sessiondomain.TokensFromHeaders(
		c.Get(fiber.HeaderAuthorization), c.Get(sessionhandler.GuestSessionHeader))

	identity, created, err := h.resolver.Resolve(c.Context(), userToken, guestToken)
	if err != nil {
		if errors.Is(err, sessionservice.ErrSessionUnavailable) {
			return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
				Message: "Guest sessions are temporarily unavailable",
				RayID:   rayID(c),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
	}
	if created {
		c.Set(sessionhandler.GuestSessionHeader, identity.Token)
	}

	cart, err := h.service.GetCart(c.Context(), identity)
	if err != nil {
		logger.Get().Error("Failed to fetch cart",
			zap.String("identity_kind", string(identity.Kind)),
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not load your cart. Please try again.",
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusOK).JSON(CartResponse{
		Items:         cart.Items,
		TotalAmount:   cart.TotalAmount,
		TotalDiscount: cart.TotalDiscount,
		ItemCount:     cart.ItemCount(),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}
