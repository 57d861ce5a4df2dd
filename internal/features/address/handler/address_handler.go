package handler

import (
	"errors"
	"net/http"

	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/address/domain"
	"checkout-gateway/internal/features/address/service"
	sessiondomain "checkout-gateway/internal/features/session/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AddressHandler handles HTTP requests for saved addresses.
type AddressHandler struct {
	service *service.AddressService
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(s *service.AddressService) *AddressHandler {
	return &AddressHandler{
		service: s,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// List handles GET /addresses.
// @Summary List saved addresses
// @Description Returns all saved addresses of the authenticated user.
// @Tags addresses
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} domain.Address
// @Failure 401 {object} ErrorResponse
// @Router /addresses [get]
func (h *AddressHandler) List(c *fiber.Ctx) error {
	userToken, _ := sessiondomain.TokensFromHeaders(c.Get(fiber.HeaderAuthorization), "")

	addresses, err := h.service.List(c.Context(), userToken)
	if err != nil {
		return h.errorResponse(c, err, "Could not load your addresses")
	}

	if addresses == nil {
		addresses = []domain.Address{}
	}
	return c.Status(http.StatusOK).JSON(addresses)
}

// Create handles POST /addresses.
// @Summary Create an address
// @Description Saves a new address; it becomes the selected shipping address. The first address ever created is forced to default.
// @Tags addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param address body domain.Input true "Address fields"
// @Success 201 {object} domain.Address
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses [post]
func (h *AddressHandler) Create(c *fiber.Ctx) error {
	userToken, _ := sessiondomain.TokensFromHeaders(c.Get(fiber.HeaderAuthorization), "")

	var input domain.Input
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	created, err := h.service.Create(c.Context(), userToken, input)
	if err != nil {
		return h.errorResponse(c, err, "Could not save the address")
	}

	return c.Status(http.StatusCreated).JSON(created)
}

// Update handles PUT /addresses/:id.
// @Summary Update an address
// @Description Modifies an existing address; it becomes the selected shipping address.
// @Tags addresses
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Address ID"
// @Param address body domain.Input true "Address fields"
// @Success 200 {object} domain.Address
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses/{id} [put]
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	userToken, _ := sessiondomain.TokensFromHeaders(c.Get(fiber.HeaderAuthorization), "")

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid address id",
			RayID:   rayID(c),
		})
	}

	var input domain.Input
	if err := c.BodyParser(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	updated, err := h.service.Update(c.Context(), userToken, int64(id), input)
	if err != nil {
		return h.errorResponse(c, err, "Could not update the address")
	}

	return c.Status(http.StatusOK).JSON(updated)
}

// Delete handles DELETE /addresses/:id.
// @Summary Delete an address
// @Description Removes an address. Deleting the selected shipping address clears the selection.
// @Tags addresses
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path int true "Address ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /addresses/{id} [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	userToken, _ := sessiondomain.TokensFromHeaders(c.Get(fiber.HeaderAuthorization), "")

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid address id",
			RayID:   rayID(c),
		})
	}

	if err := h.service.Delete(c.Context(), userToken, int64(id)); err != nil {
		return h.errorResponse(c, err, "Could not delete the address")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Address deleted",
	})
}

// errorResponse maps service failures to HTTP responses.
func (h *AddressHandler) errorResponse(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, service.ErrAuthenticationRequired) {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "Sign in to manage addresses",
			RayID:   rayID(c),
		})
	}

	logger.Get().Error("Address operation failed",
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
