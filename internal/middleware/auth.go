package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-recommendation-service/internal/auth"
	"movie-recommendation-service/internal/models"
)

// Locals keys set by Authenticate.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// TokenVerifier validates access tokens.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

func tokenFrom(c fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	if header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
			return strings.TrimSpace(header[7:])
		}
		return header
	}
	return c.Cookies("token")
}

// Authenticate requires a valid token in the Authorization header (with or
// without the Bearer scheme) or the "token" cookie.
func Authenticate(verifier TokenVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "access denied: no token provided",
			})
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireAdmin rejects callers without the admin role. It must run after
// Authenticate.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		if Role(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "access denied: admins only",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID, or "".
func UserID(c fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// Role returns the authenticated role, or "".
func Role(c fiber.Ctx) string {
	role, _ := c.Locals(LocalRole).(string)
	return role
}
