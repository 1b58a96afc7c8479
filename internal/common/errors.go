package common

import "errors"

// Sentinel errors shared by repositories, services and transports.
// Callers should match them with errors.Is.
var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrAlreadyExists   = errors.New("already exists")

	// ErrStoreUnavailable marks a failure to reach the database. It is transient.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrConflict       = errors.New("concurrent update, try again")
	ErrValidation     = errors.New("validation error")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// IsTransient reports whether err is worth retrying by the caller.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrStoreUnavailable)
}
