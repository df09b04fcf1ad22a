package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// RequireRole ensures that the authenticated user possesses one of the
// allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := strings.ToLower(strings.TrimSpace(role))
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		role := UserRole(c)
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
