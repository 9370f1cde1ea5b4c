package models

import "time"

// Provider records how an account was established.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

// User is a verified, permanent account. Email is the identity key across
// both local and Google provenance; a hybrid account holds a password hash
// and a GoogleID at the same time.
type User struct {
	BaseModel
	Name          string   `json:"name"`
	Email         string   `gorm:"uniqueIndex" json:"email"`
	PhoneNumber   string   `json:"phone_number,omitempty"`
	PasswordHash  string   `json:"-"`
	Provider      Provider `json:"provider"`
	GoogleID      *string  `gorm:"uniqueIndex" json:"google_id,omitempty"`
	Avatar        string   `json:"avatar,omitempty"`
	IsVerified    bool     `json:"is_verified"`
	TermsAccepted bool     `json:"terms_accepted"`
}

// HasPassword reports whether local credentials can authenticate this user.
// Pure-OAuth accounts carry no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PendingUser is a local registration awaiting email confirmation. It is
// removed on promotion, on expiry, or when a verified account with the same
// email turns out to already exist.
type PendingUser struct {
	BaseModel
	Name                string    `json:"name"`
	Email               string    `gorm:"uniqueIndex" json:"email"`
	PhoneNumber         string    `json:"phone_number"`
	PasswordHash        string    `json:"-"`
	TermsAccepted       bool      `json:"terms_accepted"`
	VerificationToken   string    `gorm:"uniqueIndex" json:"-"`
	VerificationExpires time.Time `json:"verification_expires"`
}

// Expired reports whether the verification window has closed.
func (p *PendingUser) Expired(now time.Time) bool {
	return p.VerificationExpires.Before(now)
}
