package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/offline-cache/internal/adapters/repo/schema"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

type connFunc func() (*sql.DB, error)

type Collection[K domain.Key, R domain.Record[K, R], S any] struct {
	conn  connFunc
	codec schema.Codec[K, R, S]
	table string
}

var (
	_ ports.RecordRepository[domain.DesignID, domain.Design]   = (*Collection[domain.DesignID, domain.Design, schema.Item])(nil)
	_ ports.RecordRepository[domain.ArtworkID, domain.Artwork] = (*Collection[domain.ArtworkID, domain.Artwork, schema.Item])(nil)
	_ ports.RecordRepository[domain.PostID, domain.Post]       = (*Collection[domain.PostID, domain.Post, schema.Post])(nil)
)

func newCollection[K domain.Key, R domain.Record[K, R], S any](conn connFunc, codec schema.Codec[K, R, S]) *Collection[K, R, S] {
	// Table names come from the fixed set of kinds, never from input.
	return &Collection[K, R, S]{conn: conn, codec: codec, table: string(codec.Kind)}
}

func (c *Collection[K, R, S]) GetByID(ctx context.Context, id K) (R, error) {
	var zero R

	conn, err := c.conn()
	if err != nil {
		return zero, err
	}

	var payload string
	err = conn.QueryRowContext(ctx, "SELECT payload FROM "+c.table+" WHERE id = ?", id.String()).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, fmt.Errorf("%s %s: %w", c.codec.Kind, id, domain.ErrRecordNotFound)
		}
		return zero, fmt.Errorf("query %s %s: %w", c.codec.Kind, id, err)
	}

	return c.decode(payload)
}

func (c *Collection[K, R, S]) List(ctx context.Context) ([]R, error) {
	conn, err := c.conn()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, "SELECT payload FROM "+c.table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.codec.Kind, err)
	}
	defer rows.Close()

	records := make([]R, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.codec.Kind, err)
		}

		record, err := c.decode(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", c.codec.Kind, err)
	}

	return records, nil
}

func (c *Collection[K, R, S]) Save(ctx context.Context, record R) error {
	return c.SaveAll(ctx, []R{record})
}

// SaveAll upserts the batch inside one transaction.
func (c *Collection[K, R, S]) SaveAll(ctx context.Context, records []R) error {
	if len(records) == 0 {
		return ctx.Err()
	}

	conn, err := c.conn()
	if err != nil {
		return err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s upsert: %w", c.codec.Kind, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO "+c.table+" (id, payload, updated_at) VALUES (?, ?, ?) "+
		"ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at")
	if err != nil {
		return fmt.Errorf("prepare %s upsert: %w", c.codec.Kind, err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, record := range records {
		encoded := c.codec.Encode(record)
		payload, err := json.Marshal(encoded)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", c.codec.Kind, record.Key(), err)
		}

		if _, err := stmt.ExecContext(ctx, c.codec.Key(encoded), string(payload), now); err != nil {
			return fmt.Errorf("upsert %s %s: %w", c.codec.Kind, record.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s upsert: %w", c.codec.Kind, err)
	}

	return nil
}

func (c *Collection[K, R, S]) Delete(ctx context.Context, id K) error {
	conn, err := c.conn()
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM "+c.table+" WHERE id = ?", id.String()); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.codec.Kind, id, err)
	}

	return nil
}

func (c *Collection[K, R, S]) Clear(ctx context.Context) error {
	conn, err := c.conn()
	if err != nil {
		return err
	}

	if _, err := conn.ExecContext(ctx, "DELETE FROM "+c.table); err != nil {
		return fmt.Errorf("clear %s: %w", c.codec.Kind, err)
	}

	return nil
}

func (c *Collection[K, R, S]) decode(payload string) (R, error) {
	var zero R
	var encoded S
	if err := json.Unmarshal([]byte(payload), &encoded); err != nil {
		return zero, fmt.Errorf("decode %s payload: %w", c.codec.Kind, err)
	}

	return c.codec.Decode(encoded), nil
}
