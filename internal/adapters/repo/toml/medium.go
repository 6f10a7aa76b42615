package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
	"github.com/spf13/viper"
)

const (
	StoreDirKey     = "store.dir"
	defaultStoreDir = ".offline-cache"
	dataDirName     = "data"

	designsFileName  = "designs.toml"
	artworksFileName = "artworks.toml"
	postsFileName    = "posts.toml"
	settingsFileName = "settings.toml"
)

// Medium stores every collection and the settings map as TOML files in one directory.
type Medium struct {
	dir      string
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

	dir, err := normalizePath(dir)
	if err != nil {
		return nil, err
	}

	designs, err := NewCollection(filepath.Join(dir, designsFileName), schema.Designs)
	if err != nil {
		return nil, err
	}
	artworks, err := NewCollection(filepath.Join(dir, artworksFileName), schema.Artworks)
	if err != nil {
		return nil, err
	}
	posts, err := NewCollection(filepath.Join(dir, postsFileName), schema.Posts)
	if err != nil {
		return nil, err
	}
	settings, err := NewSettingsRepository(filepath.Join(dir, settingsFileName))
	if err != nil {
		return nil, err
	}

	return &Medium{
		dir:      dir,
		designs:  designs,
		artworks: artworks,
		posts:    posts,
		settings: settings,
	}, nil
}

func (m *Medium) Dir() string {
	return m.dir
}

func (m *Medium) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(m.dir, storeDirMode); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	return errors.Join(
		m.designs.Check(),
		m.artworks.Check(),
		m.posts.Check(),
		m.settings.Check(),
	)
}

func (m *Medium) Close() error {
	return nil
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
