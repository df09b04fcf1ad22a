package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/TMgolfkid359/Magnolia-App/internal/utils"
)

// Locals keys set by the JWT middleware.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// binds the authenticated user ID and role to the request.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		userID, _ := claims["sub"].(string)
		if userID == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token subject")
		}
		c.Locals(LocalUserID, userID)

		if role, _ := claims["role"].(string); role != "" {
			c.Locals(LocalUserRole, strings.ToLower(strings.TrimSpace(role)))
		}

		return c.Next()
	}
}

// UserID returns the authenticated user ID bound to the request, empty when
// the request is unauthenticated.
func UserID(c *fiber.Ctx) string {
	if value, ok := c.Locals(LocalUserID).(string); ok {
		return value
	}
	return ""
}

// UserRole returns the authenticated user's role bound to the request.
func UserRole(c *fiber.Ctx) string {
	if value, ok := c.Locals(LocalUserRole).(string); ok {
		return value
	}
	return ""
}
