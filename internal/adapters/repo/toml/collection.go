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

// Collection keeps one record kind in a single TOML file. Records are stored
// in insertion order and an upsert rewrites the entry in place.
type Collection[K domain.Key, R domain.Record[K, R], S any] struct {
	path  string
	codec schema.Codec[K, R, S]
	mu    *sync.RWMutex
}

var (
	_ ports.RecordRepository[domain.DesignID, domain.Design]   = (*Collection[domain.DesignID, domain.Design, schema.Item])(nil)
	_ ports.RecordRepository[domain.ArtworkID, domain.Artwork] = (*Collection[domain.ArtworkID, domain.Artwork, schema.Item])(nil)
	_ ports.RecordRepository[domain.PostID, domain.Post]       = (*Collection[domain.PostID, domain.Post, schema.Post])(nil)
)

func NewCollection[K domain.Key, R domain.Record[K, R], S any](path string, codec schema.Codec[K, R, S]) (*Collection[K, R, S], error) {
	if path == "" {
		return nil, fmt.Errorf("%s path is empty", codec.Kind)
	}

	normalized, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &Collection[K, R, S]{path: normalized, codec: codec, mu: lockForPath(normalized)}, nil
}

func (c *Collection[K, R, S]) Path() string {
	return c.path
}

func (c *Collection[K, R, S]) GetByID(ctx context.Context, id K) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := c.readSchema()
	if err != nil {
		return zero, err
	}

	key := id.String()
	for _, entry := range file.Records {
		if c.codec.Key(entry) == key {
			return c.codec.Decode(entry), nil
		}
	}

	return zero, fmt.Errorf("%s %s: %w", c.codec.Kind, key, domain.ErrRecordNotFound)
}

func (c *Collection[K, R, S]) List(ctx context.Context) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	file, err := c.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]R, 0, len(file.Records))
	for _, entry := range file.Records {
		records = append(records, c.codec.Decode(entry))
	}

	return records, nil
}

func (c *Collection[K, R, S]) Save(ctx context.Context, record R) error {
	return c.SaveAll(ctx, []R{record})
}

func (c *Collection[K, R, S]) SaveAll(ctx context.Context, records []R) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := c.readSchema()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(file.Records))
	for i, entry := range file.Records {
		index[c.codec.Key(entry)] = i
	}

	for _, record := range records {
		encoded := c.codec.Encode(record)
		key := c.codec.Key(encoded)
		if i, ok := index[key]; ok {
			file.Records[i] = encoded
			continue
		}

		index[key] = len(file.Records)
		file.Records = append(file.Records, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return c.writeSchema(file)
}

func (c *Collection[K, R, S]) Delete(ctx context.Context, id K) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file, err := c.readSchema()
	if err != nil {
		return err
	}

	key := id.String()
	kept := file.Records[:0]
	for _, entry := range file.Records {
		if c.codec.Key(entry) != key {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(file.Records) {
		return nil
	}
	file.Records = kept

	return c.writeSchema(file)
}

func (c *Collection[K, R, S]) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeSchema(collectionFile[S]{Version: schema.CurrentVersion})
}

// Check reads the file once so an unreadable or newer-version file fails at open.
func (c *Collection[K, R, S]) Check() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, err := c.readSchema()
	return err
}

func (c *Collection[K, R, S]) readSchema() (collectionFile[S], error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return collectionFile[S]{Version: schema.CurrentVersion}, nil
		}
		return collectionFile[S]{}, fmt.Errorf("read %s file: %w", c.codec.Kind, err)
	}

	var file collectionFile[S]
	if err := toml.Unmarshal(data, &file); err != nil {
		return collectionFile[S]{}, fmt.Errorf("decode %s file: %w", c.codec.Kind, err)
	}
	if err := validateVersion(string(c.codec.Kind), file.Version, schema.CurrentVersion); err != nil {
		return collectionFile[S]{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (c *Collection[K, R, S]) writeSchema(file collectionFile[S]) error {
	file.applyDefaults()
	if err := writeTOMLFile(c.path, file); err != nil {
		return fmt.Errorf("write %s file: %w", c.codec.Kind, err)
	}

	return nil
}
