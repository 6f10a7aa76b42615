package ports

import (
	"context"

	"github.com/bnema/offline-cache/internal/domain"
)

// RemoteSource is the backend collaborator for one record kind.
type RemoteSource[K domain.Key, R domain.Record[K, R]] interface {
	Fetch(ctx context.Context) ([]R, error)
	Push(ctx context.Context, record R) error
}
