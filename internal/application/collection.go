package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
)

// Collection is the fail-soft view of one record kind. Reads never return
// errors; mutators log and return them so callers may ignore or count them.
type Collection[K domain.Key, R domain.Record[K, R]] struct {
	kind   domain.Kind
	repo   ports.RecordRepository[K, R]
	ready  func() bool
	logger *slog.Logger
}

func newCollection[K domain.Key, R domain.Record[K, R]](kind domain.Kind, repo ports.RecordRepository[K, R], ready func() bool, logger *slog.Logger) *Collection[K, R] {
	return &Collection[K, R]{
		kind:   kind,
		repo:   repo,
		ready:  ready,
		logger: logger.With("kind", string(kind)),
	}
}

func (c *Collection[K, R]) Kind() domain.Kind {
	return c.kind
}

// Put upserts one record. A stored LastSynced later than the incoming one is kept.
func (c *Collection[K, R]) Put(ctx context.Context, record R) error {
	if err := c.checkOpen("put"); err != nil {
		return err
	}

	stored, err := c.repo.GetByID(ctx, record.Key())
	switch {
	case err == nil:
		record = domain.CarryLastSynced(record, stored)
	case !errors.Is(err, domain.ErrRecordNotFound):
		return c.fail("put", fmt.Errorf("read %s %s: %w", c.kind, record.Key(), err))
	}

	if err := c.repo.Save(ctx, record); err != nil {
		return c.fail("put", fmt.Errorf("save %s %s: %w", c.kind, record.Key(), err))
	}

	return nil
}

// PutAll upserts a batch in one write. A repeated id keeps the last occurrence.
func (c *Collection[K, R]) PutAll(ctx context.Context, records []R) error {
	if len(records) == 0 {
		return nil
	}
	if err := c.checkOpen("put all"); err != nil {
		return err
	}

	existing, err := c.repo.List(ctx)
	if err != nil {
		return c.fail("put all", fmt.Errorf("list %s: %w", c.kind, err))
	}
	stored := make(map[K]R, len(existing))
	for _, record := range existing {
		stored[record.Key()] = record
	}

	batch := make([]R, 0, len(records))
	position := make(map[K]int, len(records))
	for _, record := range records {
		if previous, ok := stored[record.Key()]; ok {
			record = domain.CarryLastSynced(record, previous)
		}
		if i, ok := position[record.Key()]; ok {
			batch[i] = record
			continue
		}
		position[record.Key()] = len(batch)
		batch = append(batch, record)
	}

	if err := c.repo.SaveAll(ctx, batch); err != nil {
		return c.fail("put all", fmt.Errorf("save %d %s: %w", len(batch), c.kind, err))
	}

	return nil
}

func (c *Collection[K, R]) Get(ctx context.Context, id K) (R, bool) {
	var zero R
	if c.checkOpen("get") != nil {
		return zero, false
	}

	record, err := c.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			c.logger.Warn("read record failed", "id", id.String(), "error", err)
		}
		return zero, false
	}

	return record, true
}

// GetAll returns every record in insertion order, or an empty slice.
func (c *Collection[K, R]) GetAll(ctx context.Context) []R {
	if c.checkOpen("get all") != nil {
		return []R{}
	}

	records, err := c.repo.List(ctx)
	if err != nil {
		c.logger.Warn("list records failed", "error", err)
		return []R{}
	}

	return records
}

func (c *Collection[K, R]) GetFavorites(ctx context.Context) []R {
	return c.filter(ctx, func(record R) bool { return record.State().IsFavorite })
}

// Pending returns the records still waiting to be pushed.
func (c *Collection[K, R]) Pending(ctx context.Context) []R {
	return c.filter(ctx, domain.IsPending[K, R])
}

func (c *Collection[K, R]) Delete(ctx context.Context, id K) error {
	if err := c.checkOpen("delete"); err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		return c.fail("delete", fmt.Errorf("delete %s %s: %w", c.kind, id, err))
	}

	return nil
}

func (c *Collection[K, R]) Clear(ctx context.Context) error {
	if err := c.checkOpen("clear"); err != nil {
		return err
	}

	if err := c.repo.Clear(ctx); err != nil {
		return c.fail("clear", fmt.Errorf("clear %s: %w", c.kind, err))
	}

	return nil
}

func (c *Collection[K, R]) filter(ctx context.Context, keep func(R) bool) []R {
	all := c.GetAll(ctx)
	out := make([]R, 0, len(all))
	for _, record := range all {
		if keep(record) {
			out = append(out, record)
		}
	}

	return out
}

func (c *Collection[K, R]) checkOpen(op string) error {
	if c.ready() {
		return nil
	}

	c.logger.Warn("store not open", "op", op)
	return domain.ErrStoreNotOpen
}

func (c *Collection[K, R]) fail(op string, err error) error {
	c.logger.Warn("write failed", "op", op, "error", err)
	return err
}
