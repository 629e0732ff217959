package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/dto"
	"storefront/internal/services"
)

// AuthHandler handles login, token refresh and revocation.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the auth routes. Revoke requires a valid access
// token; it is intentionally not scoped to the caller's own session.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/Auth")
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/refresh-token", h.HandleRefreshToken)
	authRoutes.Post("/revoke/:username", authRequired, h.HandleRevoke)
}

// HandleLogin authenticates a user and returns an access/refresh token pair.
// Failures are a bare 401 with no hint of which check failed.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrors(err),
		})
	}

	response, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return respondError(c, err)
	}

	return c.JSON(response)
}

// HandleRefreshToken exchanges an expired access token plus refresh token for
// a rotated pair.
func (h *AuthHandler) HandleRefreshToken(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid client request",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid client request",
		})
	}

	response, err := h.authService.Refresh(req.AccessToken, req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid access token/refresh token",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(response)
}

// HandleRevoke clears the named user's refresh token.
func (h *AuthHandler) HandleRevoke(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := h.authService.Revoke(username); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid user name",
			})
		}
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
