package backend

import (
	"errors"
	"fmt"
)

// ErrorFlags carries backend-specific response flags used to classify
// authentication failures. The backend does not use distinct status codes for
// these, only payload markers.
type ErrorFlags struct {
	UserNotFound     bool  `json:"userNotFound,omitempty"`
	IsEmailVerified  *bool `json:"isEmailVerified,omitempty"`
	IsEmailDuplicate bool  `json:"isEmailDuplicate,omitempty"`
}

// Error is the single failure type surfaced by the gateway. Transport
// failures (connect errors, timeouts) carry a zero StatusCode and a wrapped
// cause; HTTP failures carry the response status and decoded payload.
type Error struct {
	StatusCode int
	Message    string
	Errors     []string
	Flags      ErrorFlags
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: unexpected status %d", e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport reports whether the failure never produced an HTTP response.
func (e *Error) Transport() bool {
	return e.StatusCode == 0
}

// AsError extracts a gateway error from err, if present.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
