package apperr

import "fmt"

// ValidationError reports malformed client input. Field names the first
// violated rule so the caller can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError reports a uniqueness violation, such as registering an email
// that already has an account.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports an unknown or expired token or record. The message is
// intentionally vague so callers cannot probe which case occurred.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// AuthError reports failed authentication. The same message is used whether
// the account is missing or the password is wrong.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// DependencyError wraps a failure of an external collaborator (mail, store).
// Its details are logged server-side and never shown to the client.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *DependencyError) Unwrap() error { return e.Err }

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Conflict builds a ConflictError.
func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// NotFound builds a NotFoundError.
func NotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// Auth builds an AuthError.
func Auth(message string) *AuthError {
	return &AuthError{Message: message}
}

// Dependency wraps err with the operation that failed.
func Dependency(op string, err error) *DependencyError {
	return &DependencyError{Op: op, Err: err}
}
