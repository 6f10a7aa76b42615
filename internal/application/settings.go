package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

type Settings struct {
	store  ports.SettingsStore
	ready  func() bool
	logger *slog.Logger
}

type SettingValue struct {
	Name    string
	Value   string
	Present bool
}

func newSettings(store ports.SettingsStore, ready func() bool, logger *slog.Logger) *Settings {
	return &Settings{store: store, ready: ready, logger: logger}
}

// GetSetting returns def when the value is absent, unreadable or does not decode.
func GetSetting[T any](ctx context.Context, s *Settings, key domain.Setting[T], def T) T {
	raw, ok := s.raw(ctx, key.Name)
	if !ok {
		return def
	}

	value, err := key.Decode(raw)
	if err != nil {
		s.logger.Warn("stored setting is corrupt", "key", key.Name, "error", err)
		return def
	}

	return value
}

func SaveSetting[T any](ctx context.Context, s *Settings, key domain.Setting[T], value T) error {
	return s.putAll(ctx, map[string]string{key.Name: key.Encode(value)})
}

func (s *Settings) Delete(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	if err := s.checkOpen("delete setting"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, names...); err != nil {
		err = fmt.Errorf("delete settings: %w", err)
		s.logger.Warn("write failed", "op", "delete setting", "error", err)
		return err
	}

	return nil
}

// LastSyncTime is zero until a sync completed.
func (s *Settings) LastSyncTime(ctx context.Context) time.Time {
	return GetSetting(ctx, s, domain.LastSyncTime, time.Time{})
}

func (s *Settings) SetLastSyncTime(ctx context.Context, at time.Time) error {
	return SaveSetting(ctx, s, domain.LastSyncTime, at)
}

func (s *Settings) IsFirstLaunch(ctx context.Context) bool {
	return GetSetting(ctx, s, domain.IsFirstLaunch, true)
}

func (s *Settings) CompleteFirstLaunch(ctx context.Context) error {
	return SaveSetting(ctx, s, domain.IsFirstLaunch, false)
}

// Snapshot reads every known setting, in declaration order.
func (s *Settings) Snapshot(ctx context.Context) []SettingValue {
	values := make([]SettingValue, 0, len(domain.SettingNames))
	for _, name := range domain.SettingNames {
		raw, ok := s.raw(ctx, name)
		values = append(values, SettingValue{Name: name, Value: raw, Present: ok})
	}

	return values
}

func (s *Settings) raw(ctx context.Context, name string) (string, bool) {
	if s.checkOpen("get setting") != nil {
		return "", false
	}

	raw, err := s.store.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingNotFound) {
			s.logger.Warn("read setting failed", "key", name, "error", err)
		}
		return "", false
	}

	return raw, true
}

func (s *Settings) putAll(ctx context.Context, values map[string]string) error {
	if err := s.checkOpen("save setting"); err != nil {
		return err
	}

	if err := s.store.PutAll(ctx, values); err != nil {
		err = fmt.Errorf("save settings: %w", err)
		s.logger.Warn("write failed", "op", "save setting", "error", err)
		return err
	}

	return nil
}

func (s *Settings) checkOpen(op string) error {
	if s.ready() {
		return nil
	}

	s.logger.Warn("store not open", "op", op)
	return domain.ErrStoreNotOpen
}
