package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth is a Fiber middleware that guards every path under the given
// prefix with a single static bearer token. The Authorization header must be
// exactly "Bearer <token>"; anything else short-circuits with 401 before the
// route handler runs. Paths outside the prefix pass through untouched.
func BearerAuth(prefix, token string) fiber.Handler {
	expected := "Bearer " + token

	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(c.Path(), prefix) {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader != expected {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Invalid or missing token",
			})
		}

		return c.Next()
	}
}
