// Package session issues and validates the signed cookie that proves an
// authenticated identity. The credential is self-verifying: the server keeps
// no session table, so logout only clears the client cookie and a leaked
// credential stays valid until its natural expiry.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session credential.
const CookieName = "carevia_session"

// Manager mints and checks session credentials.
type Manager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewManager builds a Manager signing with secret. secure controls the
// cookie Secure flag and should be on outside local development.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, secure: secure}
}

type sessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issue mints a signed credential bound to the user ID.
func (m *Manager) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &sessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the credential and returns the embedded user ID.
func (m *Manager) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, err
	}

	if claims, ok := token.Claims.(*sessionClaims); ok && token.Valid {
		return uuid.Parse(claims.UserID)
	}

	return uuid.Nil, jwt.ErrTokenInvalidClaims
}

// Write sets the session cookie on the response.
func (m *Manager) Write(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// UserFromRequest resolves the session cookie into a user ID. An absent,
// tampered, expired or malformed credential yields ok=false; anonymous is a
// valid state, not an error.
func (m *Manager) UserFromRequest(c *fiber.Ctx) (uuid.UUID, bool) {
	token := c.Cookies(CookieName)
	if token == "" {
		return uuid.Nil, false
	}

	userID, err := m.Parse(token)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// Clear expires the session cookie (logout).
func (m *Manager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
