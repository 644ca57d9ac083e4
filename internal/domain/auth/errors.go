package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMFARequired        = errors.New("mfa code required")
	ErrMFAInvalid         = errors.New("invalid mfa code")
	ErrMFAUnavailable     = errors.New("mfa requires an encryption key")
	ErrMFANotSetup        = errors.New("mfa setup required")
	ErrPasswordMismatch   = errors.New("current password does not match")
	ErrPasswordConfirm    = errors.New("new password confirmation does not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrSessionRevoked     = errors.New("session revoked or expired")
)
