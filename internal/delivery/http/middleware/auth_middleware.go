package middleware

import (
	"errors"
	"strings"

	"facility-registry/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxAdminKey = "admin"

// AdminAuth admits requests carrying a valid admin access token.
type AdminAuth struct {
	jwt jwt.Service
}

func NewAdminAuth(jwtSvc jwt.Service) *AdminAuth {
	return &AdminAuth{jwt: jwtSvc}
}

func (m *AdminAuth) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", "", nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", "", err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", "", err)
		}
		if claims.TokenType != jwt.TokenTypeAccess || claims.Role != jwt.RoleAdmin {
			return NewAppError(fiber.StatusForbidden, "Forbidden", "", nil)
		}

		c.Locals(CtxAdminKey, claims.Username)
		return c.Next()
	}
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
