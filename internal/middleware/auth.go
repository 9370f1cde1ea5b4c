package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/carevia/server/internal/session"
)

const userContextKey = "currentUserID"

// Session resolves the session cookie into a user ID when present.
// Anonymous requests pass through untouched; a bad credential is treated the
// same as no credential.
func Session(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, ok := sessions.UserFromRequest(c); ok {
			c.Locals(userContextKey, userID)
		}
		return c.Next()
	}
}

// RequireUser rejects requests that don't carry a valid session.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := GetCurrentUserID(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}
