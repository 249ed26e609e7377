package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"netwin-platform/models"
	"netwin-platform/services"
)

// SessionMiddleware resolves the bearer token to the current user and
// attaches it to the request context. Secured routes fail closed: no valid
// session, no handler.
func SessionMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Session-Token")
		if token == "" {
			authHeader := c.Get("Authorization")
			token = strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				token = authHeader
			}
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		stored, ok, err := auth.Token()
		if err != nil {
			log.Printf("❌ [SESSION] token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal error",
			})
		}
		if !ok || stored != token {
			log.Printf("🚫 [SESSION] invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session token",
			})
		}

		user, ok, err := auth.CurrentUser()
		if err != nil || !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "no active session",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin guards admin-only routes; it must run after SessionMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

// CurrentUser pulls the session user a secured handler can rely on.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
