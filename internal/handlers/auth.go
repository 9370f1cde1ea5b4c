package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/carevia/server/internal/models"
	"github.com/carevia/server/internal/services"
	"github.com/carevia/server/internal/session"
	"github.com/carevia/server/internal/store"
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	registration *services.RegistrationService
	google       *services.GoogleLinker
	sessions     *session.Manager
	users        store.UserStore
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(registration *services.RegistrationService, google *services.GoogleLinker, sessions *session.Manager, users store.UserStore) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		google:       google,
		sessions:     sessions,
		users:        users,
	}
}

// Register starts a local signup: the account stays pending until the
// emailed verification link is opened. No session is issued here.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegistrationInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	summary, err := h.registration.Register(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration successful! Check your email to verify your account.",
		"user":    summary,
	})
}

// Verify redeems the emailed token and promotes the pending account.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	summary, err := h.registration.Verify(c.Context(), c.Query("token"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email verified successfully! You can now log in.",
		"user": fiber.Map{
			"name":  summary.Name,
			"email": summary.Email,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates password credentials and sets the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.registration.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := h.issueSession(c, user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    userResponse(user),
	})
}

// Google accepts a provider assertion, links or creates the account, and
// sets the session cookie. 201 signals a freshly created account.
func (h *AuthHandler) Google(c *fiber.Ctx) error {
	var req services.GoogleAssertion
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, created, err := h.google.Upsert(c.Context(), req)
	if err != nil {
		return err
	}

	if err := h.issueSession(c, user); err != nil {
		return err
	}

	status := fiber.StatusOK
	message := "Login successful"
	if created {
		status = fiber.StatusCreated
		message = "Registration successful"
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"user":    userResponse(user),
	})
}

// Session reports the current identity. Always 200: anonymous is a valid
// state, carried in the body rather than a status code.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	userID, ok := h.sessions.UserFromRequest(c)
	if !ok {
		return c.JSON(fiber.Map{"isLoggedIn": false, "user": nil})
	}

	user, err := h.users.ByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Account vanished since the credential was minted.
			return c.JSON(fiber.Map{"isLoggedIn": false, "user": nil})
		}
		return err
	}

	return c.JSON(fiber.Map{
		"isLoggedIn": true,
		"user":       userResponse(user),
	})
}

// Logout clears the session cookie. The credential itself stays valid until
// expiry; there is no server-side revocation list.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) issueSession(c *fiber.Ctx, user *models.User) error {
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
	}
	h.sessions.Write(c, token)
	return nil
}

func userResponse(user *models.User) fiber.Map {
	return fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"avatar":       user.Avatar,
		"is_verified":  user.IsVerified,
	}
}
