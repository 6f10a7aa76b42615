package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

type SettingsRepository struct {
	conn connFunc
}

var _ ports.SettingsStore = (*SettingsRepository)(nil)

func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	conn, err := r.conn()
	if err != nil {
		return "", err
	}

	var value string
	err = conn.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("setting %q: %w", key, domain.ErrSettingNotFound)
		}
		return "", fmt.Errorf("query setting %q: %w", key, err)
	}

	return value, nil
}

func (r *SettingsRepository) Put(ctx context.Context, key string, value string) error {
	return r.PutAll(ctx, map[string]string{key: value})
}

func (r *SettingsRepository) PutAll(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return ctx.Err()
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		for key, value := range values {
			if key == "" {
				return errors.New("setting key is empty")
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				key, value,
			); err != nil {
				return fmt.Errorf("upsert setting %q: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SettingsRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return ctx.Err()
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key); err != nil {
				return fmt.Errorf("delete setting %q: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SettingsRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := r.conn()
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings write: %w", err)
	}

	return nil
}
