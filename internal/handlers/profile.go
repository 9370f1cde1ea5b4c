package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/carevia/server/internal/middleware"
	"github.com/carevia/server/internal/store"
)

// ProfileHandler exposes the authenticated user's own record.
type ProfileHandler struct {
	users store.UserStore
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(users store.UserStore) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get returns the profile of the session's user.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.users.ByID(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"phone_number": user.PhoneNumber,
			"provider":     user.Provider,
			"avatar":       user.Avatar,
			"is_verified":  user.IsVerified,
			"created_at":   user.CreatedAt,
			"updated_at":   user.UpdatedAt,
		},
	})
}
