package handler

import (
	"net/http"

	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/session/domain"
	"checkout-gateway/internal/features/session/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GuestSessionHeader carries the guest session token on requests and responses.
const GuestSessionHeader = "X-Guest-Session"

// SessionHandler handles HTTP requests for guest session provisioning.
type SessionHandler struct {
	resolver ports.Resolver
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(resolver ports.Resolver) *SessionHandler {
	return &SessionHandler{
		resolver: resolver,
	}
}

// GuestSessionResponse is the response body for guest session provisioning.
type GuestSessionResponse struct {
	// SessionToken is the opaque token the client must persist and replay.
	SessionToken string `json:"session_token"`
	// Created reports whether a fresh token was generated by this call.
	Created bool `json:"created"`
}

// CreateGuestSession handles POST /session/guest.
// @Summary Get or create a guest session token
// @Description Returns the presented guest session token, or generates and persists a new one.
// @Tags session
// @Produce json
// @Param X-Guest-Session header string false "Existing guest session token"
// @Success 200 {object} GuestSessionResponse
// @Failure 503 {object} ErrorResponse
// @Router /session/guest [post]
func (h *SessionHandler) CreateGuestSession(c *fiber.Ctx) error {
	_, guestToken := domain.TokensFromHeaders("", c.Get(GuestSessionHeader))

	identity, created, err := h.resolver.Resolve(c.Context(), "", guestToken)
	if err != nil {
		logger.Get().Error("Failed to resolve guest session",
			zap.String("ray_id", rayID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "Guest sessions are temporarily unavailable",
			RayID:   rayID(c),
		})
	}

	c.Set(GuestSessionHeader, identity.Token)
	return c.Status(http.StatusOK).JSON(GuestSessionResponse{
		SessionToken: identity.Token,
		Created:      created,
	})
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}
