package auth

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by operations that require an active session.
var ErrNotAuthenticated = errors.New("no active session")

// ErrInvalidRole is returned before any network call when the login role is
// outside the supported set.
var ErrInvalidRole = errors.New("unsupported login role")

// LoginError surfaces an upstream-supplied login failure message.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("login failed: %s", e.Message)
}

func NewLoginError(msg string) error {
	return &LoginError{Message: msg}
}
