package services

import (
	"context"
	"errors"

	"github.com/carevia/server/internal/apperr"
	"github.com/carevia/server/internal/models"
	"github.com/carevia/server/internal/store"
)

// GoogleAssertion is the identity claim handed over after the provider has
// authenticated the user. The upstream OAuth exchange is responsible for its
// integrity; this service only reconciles it against existing records.
type GoogleAssertion struct {
	GoogleID string `json:"google_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// GoogleLinker reconciles provider assertions with stored accounts, linking
// or creating as needed.
type GoogleLinker struct {
	store store.Store
}

// NewGoogleLinker wires the linker.
func NewGoogleLinker(st store.Store) *GoogleLinker {
	return &GoogleLinker{store: st}
}

// Upsert resolves the assertion to exactly one account. It returns the
// account and whether it was created. Matching is by email OR Google subject
// id, so the same person signing up through a different path lands on one
// record. Linking never touches an existing password hash.
func (l *GoogleLinker) Upsert(ctx context.Context, a GoogleAssertion) (*models.User, bool, error) {
	if a.GoogleID == "" || a.Email == "" || a.Name == "" {
		return nil, false, apperr.Validation("google", "missing required Google account information")
	}

	email := NormalizeEmail(a.Email)
	name := NormalizeName(a.Name)

	user, err := l.store.Users().ByEmailOrGoogleID(ctx, email, a.GoogleID)
	if err == nil {
		if user.GoogleID == nil {
			gid := a.GoogleID
			user.GoogleID = &gid
			user.Provider = models.ProviderGoogle
			user.Avatar = a.Avatar
			// Provider-asserted emails are trusted unconditionally.
			user.IsVerified = true
			if err := l.store.Users().Save(ctx, user); err != nil {
				return nil, false, apperr.Dependency("link google account", err)
			}
		}
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, apperr.Dependency("look up user", err)
	}

	gid := a.GoogleID
	user = &models.User{
		Name:       name,
		Email:      email,
		GoogleID:   &gid,
		Provider:   models.ProviderGoogle,
		Avatar:     a.Avatar,
		IsVerified: true,
		// Terms are taken as accepted through the provider signup.
		TermsAccepted: true,
	}

	if err := l.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// A concurrent upsert won the create; return its account.
			existing, lookupErr := l.store.Users().ByEmailOrGoogleID(ctx, email, a.GoogleID)
			if lookupErr == nil {
				return existing, false, nil
			}
			return nil, false, apperr.Conflict("account already exists")
		}
		return nil, false, apperr.Dependency("create user", err)
	}

	return user, true, nil
}
