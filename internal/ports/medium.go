package ports

import (
	"context"

	"github.com/bnema/offline-cache/internal/domain"
)

// Medium is the on-device persistence backing every collection and the settings map.
type Medium interface {
	Open(ctx context.Context) error
	Close() error
	Designs() RecordRepository[domain.DesignID, domain.Design]
	Artworks() RecordRepository[domain.ArtworkID, domain.Artwork]
	Posts() RecordRepository[domain.PostID, domain.Post]
	Settings() SettingsStore
}
