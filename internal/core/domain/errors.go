package domain

import (
	"errors"
	"fmt"
)

// Input and identity errors.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Token errors. All of them are reported to clients as 401.
var (
	ErrMissingToken   = errors.New("token is missing")
	ErrMalformedToken = errors.New("token is malformed")
	ErrExpiredToken   = errors.New("token has expired")
	ErrUnknownUser    = errors.New("token user no longer exists")
)

// ErrUpstream is matched by every UpstreamError.
var ErrUpstream = errors.New("upstream provider error")

// InvalidInput wraps ErrInvalidInput with a client-facing reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// IsUnauthorized reports whether err belongs to the 401 family.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrUnknownUser)
}

// UpstreamError reports a failed call to a third-party provider.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
