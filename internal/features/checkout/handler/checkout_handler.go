package handler

import (
	"errors"
	"net/http"

	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/checkout/domain"
	"checkout-gateway/internal/features/checkout/ports"
	"checkout-gateway/internal/features/checkout/service"
	sessiondomain "checkout-gateway/internal/features/session/domain"
	sessionhandler "checkout-gateway/internal/features/session/handler"
	sessionports "checkout-gateway/internal/features/session/ports"
	sessionservice "checkout-gateway/internal/features/session/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Zone event types accepted by the zone-events endpoint.
const (
	eventManualToggle = "manual_toggle"
	eventCityChanged  = "city_changed"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service   *service.CheckoutService
	locations ports.LocationProvider
	resolver  sessionports.Resolver
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(s *service.CheckoutService, locations ports.LocationProvider, resolver sessionports.Resolver) *CheckoutHandler {
	return &CheckoutHandler{
		service:   s,
		locations: locations,
		resolver:  resolver,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ZoneEventRequest is a discrete zone input: an explicit toggle or a city
// selection the zone is derived from.
type ZoneEventRequest struct {
	// Type is "manual_toggle" or "city_changed".
	Type string `json:"type"`
	// Zone is the chosen zone for a manual toggle.
	Zone domain.Zone `json:"zone,omitempty"`
	// City is the selected city for a city change.
	City string `json:"city,omitempty"`
}

// SubmitResponse confirms a placed order.
type SubmitResponse struct {
	// OrderNumber is the server-issued order number.
	OrderNumber string `json:"order_number"`
	// DetailPath is where the placed order can be viewed.
	DetailPath string `json:"detail_path"`
	// Message is the confirmation text shown to the user.
	Message string `json:"message"`
}

// GetState handles GET /checkout.
// @Summary Get the checkout form state
// @Description Returns the current checkout state for the identity, creating the initial state on first access. For signed-in users the zone is seeded from the default saved address.
// @Tags checkout
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Guest-Session header string false "Guest session token"
// @Success 200 {object} domain.State
// @Failure 503 {object} ErrorResponse
// @Router /checkout [get]
func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	identity, ok := h.identity(c)
	if !ok {
		return nil
	}

	state, err := h.service.GetState(c.Context(), identity)
	if err != nil {
		return h.errorResponse(c, err, "Could not load checkout")
	}
	return c.Status(http.StatusOK).JSON(state)
}

// UpdateState handles PATCH /checkout.
// @Summary Update the checkout form state
// @Description Applies a partial update to the checkout form: billing flag, payment method, notes, and guest contact fields. Absent fields are left untouched.
// @Tags checkout
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Guest-Session header string false "Guest session token"
// @Param patch body service.StatePatch true "Fields to update"
// @Success 200 {object} domain.State
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout [patch]
func (h *CheckoutHandler) UpdateState(c *fiber.Ctx) error {
	identity, ok := h.identity(c)
	if !ok {
		return nil
	}

	var patch service.StatePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	state, err := h.service.UpdateState(c.Context(), identity, patch)
	if err != nil {
		return h.errorResponse(c, err, "Could not update checkout")
	}
	return c.Status(http.StatusOK).JSON(state)
}

// ApplyZoneEvent handles POST /checkout/zone-events.
// @Summary Apply a zone event
// @Description Runs the zone reducer for a guest: a manual zone toggle or a city selection. Signed-in users derive their zone from the selected saved address and are rejected here.
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Guest-Session header string false "Guest session token"
// @Param event body ZoneEventRequest true "Zone event"
// @Success 200 {object} domain.State
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkout/zone-events [post]
func (h *CheckoutHandler) ApplyZoneEvent(c *fiber.Ctx) error {
	identity, ok := h.identity(c)
	if !ok {
		return nil
	}

	var req ZoneEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	var event domain.ZoneEvent
	switch req.Type {
	case eventManualToggle:
		if !req.Zone.Valid() {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "Zone must be inside or outside",
				RayID:   rayID(c),
			})
		}
		event = domain.ManualToggle{Zone: req.Zone}
	case eventCityChanged:
		if req.City == "" {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Message: "City is required",
				RayID:   rayID(c),
			})
		}
		event = domain.CityChanged{City: req.City}
	default:
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Unknown zone event type",
			RayID:   rayID(c),
		})
	}

	state, err := h.service.ApplyZoneEvent(c.Context(), identity, event)
	if err != nil {
		return h.errorResponse(c, err, "Could not apply the zone change")
	}
	return c.Status(http.StatusOK).JSON(state)
}

// SelectAddress handles POST /checkout/select-address/:id.
// @Summary Select a saved address
// @Description Marks a saved address as the shipping (and mirrored billing) selection and seeds the zone from its metro flag.
// @Tags checkout
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Address ID"
// @Success 200 {object} domain.State
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /checkout/select-address/{id} [post]
func (h *CheckoutHandler) SelectAddress(c *fiber.Ctx) error {
	userToken, _ := sessiondomain.TokensFromHeaders(c.Get(fiber.HeaderAuthorization), "")
	if userToken == "" {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Sign in to select a saved address",
			RayID:   rayID(c),
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid address id",
			RayID:   rayID(c),
		})
	}

	state, err := h.service.SelectAddressByID(c.Context(), userToken, int64(id))
	if err != nil {
		return h.errorResponse(c, err, "Could not select the address")
	}
	return c.Status(http.StatusOK).JSON(state)
}

// Quote handles GET /checkout/quote.
// @Summary Get the pricing breakdown
// @Description Returns subtotal, shipping fee, total, and the delivery estimate for the current cart and zone.
// @Tags checkout
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Guest-Session header string false "Guest session token"
// @Success 200 {object} domain.Quote
// @Failure 409 {object} ErrorResponse
// @Router /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	identity, ok := h.identity(c)
	if !ok {
		return nil
	}

	quote, err := h.service.Quote(c.Context(), identity)
	if err != nil {
		return h.errorResponse(c, err, "Could not compute the quote")
	}
	return c.Status(http.StatusOK).JSON(quote)
}

// Submit handles POST /checkout/submit.
// @Summary Submit the order
// @Description Validates the checkout form, assembles the order, and submits it to the commerce API. On success the cart and checkout state are cleaned up best-effort.
// @Tags checkout
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param X-Guest-Session header string false "Guest session token"
// @Success 201 {object} SubmitResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout/submit [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	identity, ok := h.identity(c)
	if !ok {
		return nil
	}

	confirmation, err := h.service.Submit(c.Context(), identity)
	if err != nil {
		return h.errorResponse(c, err, "Could not place your order. Please try again.")
	}

	return c.Status(http.StatusCreated).JSON(SubmitResponse{
		OrderNumber: confirmation.OrderNumber,
		DetailPath:  confirmation.DetailPath,
		Message:     "Order " + confirmation.OrderNumber + " placed successfully",
	})
}

// Locations handles GET /locations.
// @Summary Get location reference data
// @Description Returns the zone area lists, selectable cities, and flat shipping rates.
// @Tags checkout
// @Produce json
// @Success 200 {object} domain.LocationData
// @Failure 502 {object} ErrorResponse
// @Router /locations [get]
func (h *CheckoutHandler) Locations(c *fiber.Ctx) error {
	loc, err := h.locations.Locations(c.Context())
	if err != nil {
		logger.Get().Error("Failed to load location data",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
			Message: "Could not load delivery locations",
			RayID:   rayID(c),
		})
	}
	return c.Status(http.StatusOK).JSON(loc)
}

// identity resolves the request identity, creating a guest session lazily.
// On failure it writes the error response and reports false.
func (h *CheckoutHandler) identity(c *fiber.Ctx) (sessiondomain.Identity, bool) {
	userToken, guestToken := sessiondomain.TokensFromHeaders(
		c.Get(fiber.HeaderAuthorization), c.Get(sessionhandler.GuestSessionHeader))

	identity, created, err := h.resolver.Resolve(c.Context(), userToken, guestToken)
	if err != nil {
		if errors.Is(err, sessionservice.ErrSessionUnavailable) {
			c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
				Message: "Guest sessions are temporarily unavailable",
				RayID:   rayID(c),
			})
			return sessiondomain.Identity{}, false
		}
		c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal Server Error",
			RayID:   rayID(c),
		})
		return sessiondomain.Identity{}, false
	}
	if created {
		c.Set(sessionhandler.GuestSessionHeader, identity.Token)
	}
	return identity, true
}

// errorResponse maps checkout failures to HTTP responses.
func (h *CheckoutHandler) errorResponse(c *fiber.Ctx, err error, fallback string) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: validationErr.Error(),
			RayID:   rayID(c),
		})
	}
	if errors.Is(err, service.ErrCartEmpty) {
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: "Your cart is empty",
			RayID:   rayID(c),
		})
	}
	if errors.Is(err, service.ErrZoneEventNotAllowed) {
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: "Zone is determined by your selected address",
			RayID:   rayID(c),
		})
	}

	logger.Get().Error("Checkout operation failed",
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)

	var apiErr *commerce.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		return c.Status(status).JSON(ErrorResponse{
			Message: apiErr.Message,
			RayID:   rayID(c),
		})
	}

	return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
		Message: fallback,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}
