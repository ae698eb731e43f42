package handler

import (
	"errors"
	"net/http"

	"cargoconnect/internal/features/auth/domain"
	"cargoconnect/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for admin authentication.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest represents the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login result.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login.
// @Summary Obtain an admin session token
// @Description Verifies admin credentials and returns a signed bearer token valid for 12 hours.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid request body",
			"ray_id":  rayID(c),
		})
	}

	token, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid credentials",
				"ray_id":  rayID(c),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal server error",
			"ray_id":  rayID(c),
		})
	}

	return c.JSON(LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// rayID returns the request identifier set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
