package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
	"github.com/spf13/viper"
)

const (
	StoreDirKey     = "store.dir"
	defaultStoreDir = ".offline-cache"
	dataDirName     = "data"
	databaseName    = "cache.db"
)

// Medium keeps every collection in one SQLite database.
type Medium struct {
	path string

	mu sync.RWMutex
	db *DB

	designs  *Collection[domain.DesignID, domain.Design, schema.Item]
	artworks *Collection[domain.ArtworkID, domain.Artwork, schema.Item]
	posts    *Collection[domain.PostID, domain.Post, schema.Post]
	settings *SettingsRepository
}

var _ ports.Medium = (*Medium)(nil)

func NewMedium(cfg *viper.Viper) (*Medium, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir := cfg.GetString(StoreDirKey)
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(homeDir, defaultStoreDir, dataDirName)
	}

	path, err := filepath.Abs(filepath.Join(dir, databaseName))
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	m := &Medium{path: path}
	m.designs = newCollection(m.conn, schema.Designs)
	m.artworks = newCollection(m.conn, schema.Artworks)
	m.posts = newCollection(m.conn, schema.Posts)
	m.settings = &SettingsRepository{conn: m.conn}

	return m, nil
}

func (m *Medium) Path() string {
	return m.path
}

func (m *Medium) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return nil
	}

	db, err := Open(ctx, m.path)
	if err != nil {
		return err
	}

	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return err
	}

	m.db = db
	return nil
}

func (m *Medium) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}

	err := m.db.Close()
	m.db = nil
	return err
}

func (m *Medium) conn() (*sql.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return nil, domain.ErrStoreNotOpen
	}

	return m.db.conn, nil
}

func (m *Medium) Designs() ports.RecordRepository[domain.DesignID, domain.Design] {
	return m.designs
}

func (m *Medium) Artworks() ports.RecordRepository[domain.ArtworkID, domain.Artwork] {
	return m.artworks
}

func (m *Medium) Posts() ports.RecordRepository[domain.PostID, domain.Post] {
	return m.posts
}

func (m *Medium) Settings() ports.SettingsStore {
	return m.settings
}
