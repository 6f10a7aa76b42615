package application

import (
	"context"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

// SessionCache remembers the login across restarts, independently of token expiry.
type SessionCache struct {
	settings *Settings
	clock    ports.Clock
	window   time.Duration
}

func newSessionCache(settings *Settings, clock ports.Clock, window time.Duration) *SessionCache {
	if window <= 0 {
		window = domain.DefaultSessionWindow
	}

	return &SessionCache{settings: settings, clock: clock, window: window}
}

func (c *SessionCache) Window() time.Duration {
	return c.window
}

// SaveSession writes the tokens and the current time as one unit.
func (c *SessionCache) SaveSession(ctx context.Context, accessToken, refreshToken, userID string) error {
	return c.settings.putAll(ctx, map[string]string{
		domain.AuthAccessToken.Name:  domain.AuthAccessToken.Encode(accessToken),
		domain.AuthRefreshToken.Name: domain.AuthRefreshToken.Encode(refreshToken),
		domain.AuthUserID.Name:       domain.AuthUserID.Encode(userID),
		domain.SessionTimestamp.Name: domain.SessionTimestamp.Encode(c.clock.Now()),
	})
}

func (c *SessionCache) GetSession(ctx context.Context) domain.AuthSession {
	issuedAt, _ := c.SessionTimestamp(ctx)

	return domain.AuthSession{
		AccessToken:  GetSetting(ctx, c.settings, domain.AuthAccessToken, ""),
		RefreshToken: GetSetting(ctx, c.settings, domain.AuthRefreshToken, ""),
		UserID:       GetSetting(ctx, c.settings, domain.AuthUserID, ""),
		IssuedAt:     issuedAt,
	}
}

func (c *SessionCache) SessionTimestamp(ctx context.Context) (time.Time, bool) {
	issuedAt := GetSetting(ctx, c.settings, domain.SessionTimestamp, time.Time{})
	return issuedAt, !issuedAt.IsZero()
}

func (c *SessionCache) ClearSession(ctx context.Context) error {
	return c.settings.Delete(ctx, domain.SessionSettings...)
}

// HasValidSession is evaluated against the clock on every call.
func (c *SessionCache) HasValidSession(ctx context.Context) bool {
	return c.GetSession(ctx).UsableAt(c.clock.Now(), c.window)
}

// AccessToken serves remote adapters that need a bearer token.
func (c *SessionCache) AccessToken(ctx context.Context) (string, error) {
	session := c.GetSession(ctx)
	if !session.UsableAt(c.clock.Now(), c.window) || session.AccessToken == "" {
		return "", domain.ErrSessionExpired
	}

	return session.AccessToken, nil
}
