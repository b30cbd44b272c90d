package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ms1708/academy-portal/internal/backend"
)

// ErrNoRefreshToken is returned by Refresh when no refresh token is stored.
var ErrNoRefreshToken = errors.New("session: no refresh token available")

// AuthErrorKind classifies authentication failures. The backend does not use
// distinct status codes for these; classification inspects payload flags.
type AuthErrorKind string

const (
	AuthErrorUserNotFound    AuthErrorKind = "user-not-found"
	AuthErrorBadCredentials  AuthErrorKind = "bad-credentials"
	AuthErrorEmailUnverified AuthErrorKind = "email-unverified"
	AuthErrorUnknown         AuthErrorKind = "unknown"
)

// AuthError wraps a failed auth call with its classification.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("session: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("session: %s", e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// AsAuthError extracts an AuthError from err, if present.
func AsAuthError(err error) (*AuthError, bool) {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// classifyAuthError maps a gateway failure onto the auth taxonomy. Transport
// errors stay unclassified so the caller can tell "wrong password" from
// "backend unreachable".
func classifyAuthError(err error) error {
	be, ok := backend.AsError(err)
	if !ok || be.Transport() {
		return err
	}

	kind := AuthErrorUnknown
	switch {
	case be.Flags.UserNotFound, be.StatusCode == http.StatusNotFound:
		kind = AuthErrorUserNotFound
	case be.Flags.IsEmailVerified != nil && !*be.Flags.IsEmailVerified:
		kind = AuthErrorEmailUnverified
	case be.StatusCode == http.StatusUnauthorized, be.StatusCode == http.StatusForbidden:
		kind = AuthErrorBadCredentials
	}
	return &AuthError{Kind: kind, Message: be.Message, Err: err}
}
