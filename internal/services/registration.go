package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/carevia/server/internal/apperr"
	"github.com/carevia/server/internal/models"
	"github.com/carevia/server/internal/store"
	"github.com/carevia/server/internal/utils"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NormalizeEmail lower-cases and trims an address. It must run before every
// uniqueness check and every write; email is the identity key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName lower-cases and trims a display name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegistrationInput is the local signup payload.
type RegistrationInput struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// UserSummary is the public-safe projection returned by the service. It
// never carries the password hash or the verification token.
type UserSummary struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

func summarize(user *models.User) *UserSummary {
	return &UserSummary{Name: user.Name, Email: user.Email, PhoneNumber: user.PhoneNumber}
}

// RegistrationService orchestrates local signup, email verification and
// password login. All collaborators are injected so tests can substitute a
// fake mailer and store.
type RegistrationService struct {
	store      store.Store
	mailer     Mailer
	verifyURL  string
	pendingTTL time.Duration
	now        func() time.Time
}

// NewRegistrationService wires the service. verifyURL is the public endpoint
// the emailed token is appended to.
func NewRegistrationService(st store.Store, mailer Mailer, verifyURL string, pendingTTL time.Duration) *RegistrationService {
	return &RegistrationService{
		store:      st,
		mailer:     mailer,
		verifyURL:  verifyURL,
		pendingTTL: pendingTTL,
		now:        time.Now,
	}
}

// Validate checks the signup payload. Rules run in a fixed order (name,
// phone, email, password, terms) and the first violation wins; callers show
// one field error at a time.
func (s *RegistrationService) Validate(in RegistrationInput) error {
	checks := []struct {
		field   string
		message string
		rule    func() error
	}{
		{"name", "name is required and must be at least 2 characters", func() error {
			return validation.Validate(strings.TrimSpace(in.Name), validation.Required, validation.Length(2, 0))
		}},
		{"phone_number", "valid phone number is required", func() error {
			return validation.Validate(in.PhoneNumber, validation.Required, is.Digit)
		}},
		{"email", "valid email is required", func() error {
			return validation.Validate(in.Email, validation.Required, validation.Match(emailPattern))
		}},
		{"password", "password must be at least 8 characters long", func() error {
			return validation.Validate(in.Password, validation.Required, validation.Length(8, 0))
		}},
		// Required rejects the zero value, which for a bool is exactly the
		// unaccepted state.
		{"terms_accepted", "you must accept terms and conditions", func() error {
			return validation.Validate(in.TermsAccepted, validation.Required)
		}},
	}

	for _, check := range checks {
		if check.rule() != nil {
			return apperr.Validation(check.field, check.message)
		}
	}

	return nil
}

// Register validates the payload, mails the verification link and persists a
// pending record. The mail send comes first: if it fails nothing is stored,
// since an account that never receives its link is unreachable.
func (s *RegistrationService) Register(ctx context.Context, in RegistrationInput) (*UserSummary, error) {
	if err := s.Validate(in); err != nil {
		return nil, err
	}

	name := NormalizeName(in.Name)
	email := NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.PhoneNumber)

	if _, err := s.store.Users().ByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Dependency("look up user", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Dependency("hash password", err)
	}

	token, err := utils.NewVerificationToken()
	if err != nil {
		return nil, apperr.Dependency("generate verification token", err)
	}

	link := s.verifyURL + "?token=" + token
	if err := s.mailer.SendVerification(ctx, email, name, link); err != nil {
		return nil, apperr.Dependency("send verification email", err)
	}

	pending := &models.PendingUser{
		Name:                name,
		Email:               email,
		PhoneNumber:         phone,
		PasswordHash:        hash,
		TermsAccepted:       in.TermsAccepted,
		VerificationToken:   token,
		VerificationExpires: s.now().Add(s.pendingTTL),
	}

	if err := s.store.Pending().Create(ctx, pending); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to a concurrent registration for the same email.
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Dependency("create pending user", err)
	}

	return &UserSummary{Name: name, Email: email, PhoneNumber: phone}, nil
}

// Verify redeems a verification token and promotes the pending record to a
// permanent user. Redemption consumes the token, so a second attempt reports
// the same not-found error as an unknown token.
func (s *RegistrationService) Verify(ctx context.Context, token string) (*UserSummary, error) {
	if token == "" {
		return nil, apperr.Validation("token", "verification token is required")
	}

	var summary *UserSummary
	var verifyErr error

	// The cleanup paths set verifyErr and return nil so their deletes still
	// commit; only dependency failures roll the transaction back.
	txErr := s.store.Transaction(ctx, func(tx store.Store) error {
		pending, err := tx.Pending().ConsumeToken(ctx, token)
		if errors.Is(err, store.ErrNotFound) {
			verifyErr = apperr.NotFound("invalid or expired verification token")
			return nil
		}
		if err != nil {
			return apperr.Dependency("consume verification token", err)
		}

		if pending.Expired(s.now()) {
			// Same response as an unknown token so callers cannot tell the
			// two cases apart.
			verifyErr = apperr.NotFound("invalid or expired verification token")
			return nil
		}

		if _, err := tx.Users().ByEmail(ctx, pending.Email); err == nil {
			verifyErr = apperr.Conflict("email already verified")
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return apperr.Dependency("look up user", err)
		}

		user := &models.User{
			Name:          pending.Name,
			Email:         pending.Email,
			PhoneNumber:   pending.PhoneNumber,
			PasswordHash:  pending.PasswordHash,
			Provider:      models.ProviderLocal,
			IsVerified:    true,
			TermsAccepted: pending.TermsAccepted,
		}

		if err := tx.Users().Create(ctx, user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				verifyErr = apperr.Conflict("email already verified")
				return nil
			}
			return apperr.Dependency("create user", err)
		}

		summary = summarize(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return summary, nil
}

// Authenticate checks password credentials. Unknown email and wrong password
// produce the identical error so accounts cannot be enumerated.
func (s *RegistrationService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email", "email and password are required")
	}

	user, err := s.store.Users().ByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.Auth("invalid credentials")
	}
	if err != nil {
		return nil, apperr.Dependency("look up user", err)
	}

	if !user.HasPassword() || !utils.CheckPassword(user.PasswordHash, password) {
		return nil, apperr.Auth("invalid credentials")
	}

	return user, nil
}
