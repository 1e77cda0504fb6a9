package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/services"
	"lms/utils"
)

const UserIDKey = "user_id"

// TokenFromRequest pulls the session token from the Authorization
// header (with or without a Bearer prefix) or the session cookie. The
// transport is a handler concern; services only ever see the token.
func TokenFromRequest(c *fiber.Ctx) string {
	token := c.Get("Authorization")
	if token != "" {
		return strings.TrimPrefix(token, "Bearer ")
	}
	return c.Cookies("session_token")
}

// RequireAuth rejects requests without a live session and stores the
// resolved user id in locals.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.ResolveSession(TokenFromRequest(c))
		if err != nil {
			return utils.Unauthorized(c, "Not authenticated")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the session when one is presented but lets
// anonymous requests through. Used by the public catalog views.
func OptionalAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := auth.ResolveSession(TokenFromRequest(c)); err == nil {
			c.Locals(UserIDKey, userID)
		}
		return c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth or
// OptionalAuth; ok is false on anonymous requests.
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(UserIDKey).(uint)
	return userID, ok
}
