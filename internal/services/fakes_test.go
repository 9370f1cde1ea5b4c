package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carevia/server/internal/models"
	"github.com/carevia/server/internal/store"
)

// fakeStore is an in-memory store.Store enforcing the same uniqueness rules
// the real indexes do.
type fakeStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	pending map[uuid.UUID]*models.PendingUser
	goods   []models.Good
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[uuid.UUID]*models.User),
		pending: make(map[uuid.UUID]*models.PendingUser),
	}
}

func (f *fakeStore) Users() store.UserStore          { return &fakeUserStore{f} }
func (f *fakeStore) Pending() store.PendingUserStore { return &fakePendingStore{f} }
func (f *fakeStore) Goods() store.GoodStore          { return &fakeGoodStore{f} }

func (f *fakeStore) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(f)
}

// pendingByEmail is a test helper for asserting on pending state.
func (f *fakeStore) pendingByEmail(email string) (*models.PendingUser, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pending := range f.pending {
		if pending.Email == email {
			copied := *pending
			return &copied, true
		}
	}
	return nil, false
}

func (f *fakeStore) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

type fakeUserStore struct {
	s *fakeStore
}

func (f *fakeUserStore) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if user, ok := f.s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, user := range f.s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) ByEmailOrGoogleID(ctx context.Context, email, googleID string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, user := range f.s.users {
		if user.Email == email || (user.GoogleID != nil && *user.GoogleID == googleID) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
		if user.GoogleID != nil && existing.GoogleID != nil && *existing.GoogleID == *user.GoogleID {
			return store.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	f.s.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Save(ctx context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	copied := *user
	f.s.users[user.ID] = &copied
	return nil
}

type fakePendingStore struct {
	s *fakeStore
}

func (f *fakePendingStore) ConsumeToken(ctx context.Context, token string) (*models.PendingUser, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for id, pending := range f.s.pending {
		if pending.VerificationToken == token {
			delete(f.s.pending, id)
			copied := *pending
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePendingStore) Create(ctx context.Context, pending *models.PendingUser) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.pending {
		if existing.Email == pending.Email || existing.VerificationToken == pending.VerificationToken {
			return store.ErrDuplicate
		}
	}
	if pending.ID == uuid.Nil {
		pending.ID = uuid.New()
	}
	pending.CreatedAt = time.Now()
	pending.UpdatedAt = pending.CreatedAt
	copied := *pending
	f.s.pending[pending.ID] = &copied
	return nil
}

func (f *fakePendingStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	delete(f.s.pending, id)
	return nil
}

func (f *fakePendingStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var removed int64
	for id, pending := range f.s.pending {
		if pending.VerificationExpires.Before(now) {
			delete(f.s.pending, id)
			removed++
		}
	}
	return removed, nil
}

type fakeGoodStore struct {
	s *fakeStore
}

func (f *fakeGoodStore) List(ctx context.Context, limit, offset int) ([]models.Good, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]models.Good(nil), f.s.goods...), int64(len(f.s.goods)), nil
}

func (f *fakeGoodStore) Create(ctx context.Context, good *models.Good) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if good.ID == uuid.Nil {
		good.ID = uuid.New()
	}
	f.s.goods = append(f.s.goods, *good)
	return nil
}

type sentMail struct {
	To   string
	Name string
	Link string
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	fail error
	sent []sentMail
}

func (f *fakeMailer) SendVerification(ctx context.Context, to, name, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{To: to, Name: name, Link: link})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
