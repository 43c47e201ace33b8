package domain

import "time"

// Session binds an opaque token to an identity until ExpiresAt.
type Session struct {
	UserID    string    `json:"user_id"       bson:"user_id"`
	Token     string    `json:"session_token" bson:"session_token"`
	ExpiresAt time.Time `json:"expires_at"    bson:"expires_at"`
	CreatedAt time.Time `json:"created_at"    bson:"created_at"`
}

// ValidAt reports whether the session expiry is strictly after now.
func (s *Session) ValidAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}
