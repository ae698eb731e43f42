package middleware

import (
	"net/http"
	"strings"

	"cargoconnect/internal/features/auth/service"

	"github.com/gofiber/fiber/v2"
)

// AdminEmailKey is the Locals key under which the authenticated admin
// email is stored for downstream handlers.
const AdminEmailKey = "admin_email"

// RequireAdmin returns a Fiber handler that validates the bearer token on
// every protected call and refuses to proceed on failure. Verification is
// pure computation; no session store is consulted.
func RequireAdmin(auth *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "missing bearer token",
				"ray_id":  rayID(c),
			})
		}

		email, err := auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "could not validate credentials",
				"ray_id":  rayID(c),
			})
		}

		c.Locals(AdminEmailKey, email)
		return c.Next()
	}
}

// rayID returns the request identifier set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
