package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

type SettingsRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SettingsStore = (*SettingsRepository)(nil)

func NewSettingsRepository(path string) (*SettingsRepository, error) {
	if path == "" {
		return nil, errors.New("settings path is empty")
	}

	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &SettingsRepository{path: normalized, mu: lockForPath(normalized)}, nil
}

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return "", err
	}

	value, ok := file.Settings[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, domain.ErrSettingNotFound)
	}

	return value, nil
}

func (r *SettingsRepository) Put(ctx context.Context, key string, value string) error {
	return r.PutAll(ctx, map[string]string{key: value})
}

func (r *SettingsRepository) PutAll(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	for key, value := range values {
		if key == "" {
			return errors.New("setting key is empty")
		}
		file.Settings[key] = value
	}

	return r.writeSchema(file)
}

func (r *SettingsRepository) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	removed := false
	for _, key := range keys {
		if _, ok := file.Settings[key]; ok {
			delete(file.Settings, key)
			removed = true
		}
	}
	if !removed {
		return nil
	}

	return r.writeSchema(file)
}

func (r *SettingsRepository) Check() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, err := r.readSchema()
	return err
}

func (r *SettingsRepository) readSchema() (settingsFile, error) {
	var file settingsFile

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file.applyDefaults()
			return file, nil
		}
		return settingsFile{}, fmt.Errorf("read settings file: %w", err)
	}

	if err := toml.Unmarshal(data, &file); err != nil {
		return settingsFile{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := validateVersion("settings", file.Version, schema.CurrentVersion); err != nil {
		return settingsFile{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *SettingsRepository) writeSchema(file settingsFile) error {
	file.applyDefaults()
	if err := writeTOMLFile(r.path, file); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}
