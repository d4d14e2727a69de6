// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is / errors.As to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateResource = errors.New("already exists")

	// Service-level errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors (malformed, badly signed or expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError marks a failure caused by malformed caller input. It is
// created where the input is checked so that transports can surface the
// message without inspecting the error's shape.
type ValidationError struct {
	Err error
}

// NewValidationError tags err as a validation failure. A nil err yields nil.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
