package domain

import (
	"strings"
	"time"
)

const DefaultSessionWindow = 60 * 24 * time.Hour

// AuthSession is the remembered login. Empty strings mean the field is absent.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	// IssuedAt is zero for sessions persisted before the timestamp existed.
	IssuedAt time.Time
}

func (s AuthSession) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.UserID == "" && s.IssuedAt.IsZero()
}

// UsableAt reports whether the session can be resumed without the backend.
// A missing IssuedAt is treated as valid so legacy sessions are not logged out.
func (s AuthSession) UsableAt(now time.Time, window time.Duration) bool {
	if strings.TrimSpace(s.RefreshToken) == "" {
		return false
	}
	if s.IssuedAt.IsZero() {
		return true
	}
	if window <= 0 {
		window = DefaultSessionWindow
	}

	return now.Sub(s.IssuedAt) < window
}
