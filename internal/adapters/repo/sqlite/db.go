// Package sqlite stores the offline cache in a single embedded SQLite file.
//
// Every collection is a table of JSON payloads keyed by record id. Upserts keep
// the original rowid, so listing by rowid yields insertion order.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps the connection pool of one cache database file.
type DB struct {
	conn *sql.DB
	path string
}

// Open connects to the database at path, creating the parent directory.
// Every pooled connection gets WAL, a busy timeout and immediate write transactions.
func Open(ctx context.Context, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dataSourceName(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

func dataSourceName(path string) string {
	params := url.Values{}
	params.Add("_pragma", "journal_mode(wal)")
	params.Add("_pragma", "busy_timeout(5000)")
	params.Add("_pragma", "synchronous(normal)")
	params.Set("_txlock", "immediate")

	return "file:" + path + "?" + params.Encode()
}

// InitSchema creates missing tables. It is safe to call on every open.
func (db *DB) InitSchema(ctx context.Context) error {
	var version int
	if err := db.conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > schema.CurrentVersion {
		return fmt.Errorf("unsupported cache database schema version %d (current %d)", version, schema.CurrentVersion)
	}

	if _, err := db.conn.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	if version < schema.CurrentVersion {
		if _, err := db.conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version=%d", schema.CurrentVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}

	return nil
}

func (db *DB) Path() string {
	return db.path
}

// Close checkpoints the WAL and releases the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	_, checkpointErr := db.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)")

	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	db.conn = nil

	if checkpointErr != nil {
		return fmt.Errorf("checkpoint wal: %w", checkpointErr)
	}

	return nil
}
