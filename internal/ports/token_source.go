package ports

import "context"

// TokenSource hands out the bearer token for remote calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}
