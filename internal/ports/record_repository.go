package ports

import (
	"context"

	"github.com/bnema/offline-cache/internal/domain"
)

// RecordRepository persists one collection keyed by record id.
// List returns records in insertion order; Save replaces a record wholly.
type RecordRepository[K domain.Key, R domain.Record[K, R]] interface {
	GetByID(ctx context.Context, id K) (R, error)
	List(ctx context.Context) ([]R, error)
	Save(ctx context.Context, record R) error
	SaveAll(ctx context.Context, records []R) error
	Delete(ctx context.Context, id K) error
	Clear(ctx context.Context) error
}
