package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carevia/server/internal/models"
)

// gormStore implements Store on a *gorm.DB. The DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type gormStore struct {
	db *gorm.DB
}

// New wraps a gorm connection in a Store.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserStore          { return &userStore{db: s.db} }
func (s *gormStore) Pending() PendingUserStore { return &pendingStore{db: s.db} }
func (s *gormStore) Goods() GoodStore          { return &goodStore{db: s.db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

type userStore struct {
	db *gorm.DB
}

func (s *userStore) ByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *userStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *userStore) ByEmailOrGoogleID(ctx context.Context, email, googleID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Or("google_id = ?", googleID).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *userStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *userStore) Save(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

type pendingStore struct {
	db *gorm.DB
}

func (s *pendingStore) ConsumeToken(ctx context.Context, token string) (*models.PendingUser, error) {
	var pending models.PendingUser
	if err := s.db.WithContext(ctx).First(&pending, "verification_token = ?", token).Error; err != nil {
		return nil, translate(err)
	}

	// The row count decides the race: whoever deletes the row owns the
	// redemption, a concurrent redeemer or sweep sees ErrNotFound.
	res := s.db.WithContext(ctx).Delete(&models.PendingUser{}, "id = ?", pending.ID)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return &pending, nil
}

func (s *pendingStore) Create(ctx context.Context, pending *models.PendingUser) error {
	return translate(s.db.WithContext(ctx).Create(pending).Error)
}

func (s *pendingStore) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(s.db.WithContext(ctx).Delete(&models.PendingUser{}, "id = ?", id).Error)
}

func (s *pendingStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Delete(&models.PendingUser{}, "verification_expires < ?", now)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

type goodStore struct {
	db *gorm.DB
}

func (s *goodStore) List(ctx context.Context, limit, offset int) ([]models.Good, int64, error) {
	var goods []models.Good
	var total int64

	if err := s.db.WithContext(ctx).Model(&models.Good{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	err := s.db.WithContext(ctx).
		Limit(limit).Offset(offset).Order("created_at desc").
		Find(&goods).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return goods, total, nil
}

func (s *goodStore) Create(ctx context.Context, good *models.Good) error {
	return translate(s.db.WithContext(ctx).Create(good).Error)
}
