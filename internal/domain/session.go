package domain

import "time"

// Session is the authenticated-user context held between login and logout.
// ExpiresAt is derived from the access token's exp claim, not stored by the
// backend response.
type Session struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	User         User      `json:"user"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Active reports whether the session token has not yet expired.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.Token != "" && now.Before(s.ExpiresAt)
}
