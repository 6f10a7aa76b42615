package ports

import "context"

type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	// PutAll writes every pair as one unit; readers never see a partial update.
	PutAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
