package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no value exists for a key.
var ErrNotFound = errors.New("storage: key not found")

// Fixed keys used by the session, draft and error-log stores. Stored values
// keep these names so existing data survives upgrades.
const (
	KeyToken           = "app_token"
	KeyRefreshToken    = "app_refresh_token"
	KeyUser            = "app_user"
	KeyErrorLogs       = "app_error_logs"
	KeyApplicationData = "course_application_draft"
	KeyOnboardingData  = "onboarding_draft"
)

// Store is durable local key-value storage. Implementations are not required
// to guard concurrent writers from separate processes; the portal runs a
// single logical writer per store instance.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
