package errors

import (
	"errors"
)

// Sentinel errors for the expected failure modes. The capitalized messages are
// surfaced verbatim in the response envelope, so they are user-facing strings.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailAlreadyInUse  = errors.New("Email is already in use")
	ErrUserNotFound       = errors.New("User not found")
	ErrResetTokenInvalid  = errors.New("Invalid or expired token")

	ErrNoToken          = errors.New("no token provided")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedSubject = errors.New("malformed token subject")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}
