package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// JWTProtected returns a middleware that validates JWT bearer tokens and
// exposes the caller's id and role to downstream handlers.
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

		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Locals("user_id", sub)
		}
		if role, ok := claims["role"].(string); ok && role != "" {
			c.Locals("user_role", role)
		}

		return c.Next()
	}
}

// RequireRole rejects requests whose token does not carry the given role.
// Assignment commits are teacher-only; everything else is open to students.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actual, _ := c.Locals("user_role").(string)
		if actual != role {
			return utils.SendError(c, fiber.StatusForbidden, fmt.Sprintf("%s role required", role))
		}
		return c.Next()
	}
}
