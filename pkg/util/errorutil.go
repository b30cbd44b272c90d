package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ms1708/academy-portal/internal/backend"
	"github.com/ms1708/academy-portal/internal/session"
	"github.com/ms1708/academy-portal/internal/wizard"
)

// DomainError standardizes application errors surfaced by the portal API.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusUnprocessableEntity, details)
}

func NewBadRequest(message string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts portal errors to DomainError: wizard validation
// failures map to 422, classified auth errors to their natural status, and
// backend/transport failures to 502 so the caller can tell "you typed it
// wrong" from "the backend is down".
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var validationErr *wizard.ValidationError
	if errors.As(err, &validationErr) {
		return &DomainError{
			Code:       "VALIDATION_FAILED",
			Message:    validationErr.Message,
			HTTPStatus: http.StatusUnprocessableEntity,
			Details:    map[string]any{"step": validationErr.Step, "field": validationErr.Field},
			Err:        err,
		}
	}

	if errors.Is(err, wizard.ErrSubmitInFlight) {
		return &DomainError{
			Code:       "SUBMIT_IN_FLIGHT",
			Message:    "a submission is already in progress",
			HTTPStatus: http.StatusConflict,
			Err:        err,
		}
	}
	if errors.Is(err, wizard.ErrSubmitted) {
		return &DomainError{
			Code:       "ALREADY_SUBMITTED",
			Message:    "the application has already been submitted",
			HTTPStatus: http.StatusConflict,
			Err:        err,
		}
	}
	if errors.Is(err, session.ErrNoRefreshToken) {
		return &DomainError{
			Code:       "NO_REFRESH_TOKEN",
			Message:    "no refresh token available",
			HTTPStatus: http.StatusUnauthorized,
			Err:        err,
		}
	}

	if authErr, ok := session.AsAuthError(err); ok {
		status := http.StatusUnauthorized
		if authErr.Kind == session.AuthErrorUserNotFound {
			status = http.StatusNotFound
		}
		message := authErr.Message
		if message == "" {
			message = string(authErr.Kind)
		}
		return &DomainError{
			Code:       "AUTH_" + codeFromKind(authErr.Kind),
			Message:    message,
			HTTPStatus: status,
			Err:        err,
		}
	}

	if _, ok := backend.AsError(err); ok {
		return &DomainError{
			Code:       "BACKEND_UNAVAILABLE",
			Message:    "the enrollment backend could not process the request",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func codeFromKind(kind session.AuthErrorKind) string {
	switch kind {
	case session.AuthErrorUserNotFound:
		return "USER_NOT_FOUND"
	case session.AuthErrorBadCredentials:
		return "BAD_CREDENTIALS"
	case session.AuthErrorEmailUnverified:
		return "EMAIL_UNVERIFIED"
	default:
		return "FAILED"
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
