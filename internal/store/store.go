package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/carevia/server/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a uniqueness constraint.
// The unique indexes are the authority on duplicate races, not the
// application-level pre-checks.
var ErrDuplicate = errors.New("duplicate record")

// UserStore persists verified accounts.
type UserStore interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	// ByEmailOrGoogleID matches on either key; the broad match lets the same
	// person arrive via a different signup path.
	ByEmailOrGoogleID(ctx context.Context, email, googleID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

// PendingUserStore persists registrations awaiting verification.
type PendingUserStore interface {
	// ConsumeToken atomically finds and deletes the pending record holding
	// the token, making redemption single-use. Returns ErrNotFound when the
	// token is unknown or was already consumed.
	ConsumeToken(ctx context.Context, token string) (*models.PendingUser, error)
	Create(ctx context.Context, pending *models.PendingUser) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes records whose verification window closed before
	// now and reports how many were swept.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// GoodStore persists the donated goods catalog.
type GoodStore interface {
	List(ctx context.Context, limit, offset int) ([]models.Good, int64, error)
	Create(ctx context.Context, good *models.Good) error
}

// Store aggregates the record stores and provides transactional grouping for
// the steps that must land as a unit.
type Store interface {
	Users() UserStore
	Pending() PendingUserStore
	Goods() GoodStore
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
