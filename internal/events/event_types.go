package events

import (
	"time"

	"github.com/ms1708/academy-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionLoggedIn      EventType = "session_logged_in"
	EventSessionLoggedOut     EventType = "session_logged_out"
	EventSessionRefreshed     EventType = "session_refreshed"
	EventProfileUpdated       EventType = "profile_updated"
	EventDraftSaved           EventType = "draft_saved"
	EventApplicationSubmitted EventType = "application_submitted"
)

// Event represents a portal event emitted by the session store and wizard
// controllers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload accompanies session lifecycle events.
type SessionPayload struct {
	UserID        string          `json:"user_id,omitempty"`
	Email         string          `json:"email,omitempty"`
	Role          domain.UserRole `json:"role,omitempty"`
	Authenticated bool            `json:"authenticated"`
}

// DraftSavedPayload accompanies draft persistence events.
type DraftSavedPayload struct {
	Flow        string `json:"flow"`
	CurrentStep int    `json:"current_step"`
}

// ApplicationSubmittedPayload accompanies final submission events.
type ApplicationSubmittedPayload struct {
	Flow       string `json:"flow"`
	CourseName string `json:"course_name,omitempty"`
}
