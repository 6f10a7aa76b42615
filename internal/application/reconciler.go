package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/logging"
	"github.com/bnema/offline-cache/internal/ports"
	"golang.org/x/time/rate"
)

type PushReport struct {
	Attempted int
	Pushed    int
	Failed    int
}

type PullReport struct {
	Fetched int
	Applied int
	// Skipped counts remote records not applied because the local copy is pending.
	Skipped int
}

// Reconciler moves one record kind between the cache and its remote source.
type Reconciler[K domain.Key, R domain.Record[K, R]] struct {
	records *Collection[K, R]
	remote  ports.RemoteSource[K, R]
	limiter *rate.Limiter
	clock   ports.Clock
}

func NewReconciler[K domain.Key, R domain.Record[K, R]](records *Collection[K, R], remote ports.RemoteSource[K, R], limiter *rate.Limiter, clock ports.Clock) *Reconciler[K, R] {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Reconciler[K, R]{records: records, remote: remote, limiter: limiter, clock: clock}
}

func (r *Reconciler[K, R]) Kind() domain.Kind {
	return r.records.Kind()
}

// Push sends every pending record. A failed record stays pending and the loop
// moves on; an expired session or a cancelled context stops it.
func (r *Reconciler[K, R]) Push(ctx context.Context) (PushReport, error) {
	logger := logging.FromContext(ctx).With("kind", string(r.Kind()))

	var report PushReport
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("push %s: %w", r.Kind(), err)
	}

	for _, record := range r.records.Pending(ctx) {
		if err := r.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("push %s: %w", r.Kind(), err)
		}

		report.Attempted++
		if err := r.remote.Push(ctx, record); err != nil {
			report.Failed++
			if errors.Is(err, domain.ErrSessionExpired) || ctx.Err() != nil {
				return report, fmt.Errorf("push %s %s: %w", r.Kind(), record.Key(), err)
			}
			logger.Warn("push failed", "id", record.Key().String(), "error", err)
			continue
		}

		if err := r.records.Put(ctx, domain.MarkSynced(record, r.clock.Now())); err != nil {
			report.Failed++
			continue
		}
		report.Pushed++
	}

	logger.Info("push finished", "attempted", report.Attempted, "pushed", report.Pushed, "failed", report.Failed)
	return report, nil
}

// Pull applies the remote snapshot. Records with a pending local write are
// left alone: the local write is newer and will be pushed.
func (r *Reconciler[K, R]) Pull(ctx context.Context) (PullReport, error) {
	logger := logging.FromContext(ctx).With("kind", string(r.Kind()))

	fetched, err := r.remote.Fetch(ctx)
	if err != nil {
		return PullReport{}, fmt.Errorf("fetch %s: %w", r.Kind(), err)
	}

	pending := make(map[K]struct{})
	for _, record := range r.records.Pending(ctx) {
		pending[record.Key()] = struct{}{}
	}

	report := PullReport{Fetched: len(fetched)}
	now := r.clock.Now()
	apply := make([]R, 0, len(fetched))
	for _, record := range fetched {
		if _, ok := pending[record.Key()]; ok {
			report.Skipped++
			continue
		}
		apply = append(apply, domain.MarkSynced(record, now))
	}

	if err := r.records.PutAll(ctx, apply); err != nil {
		return report, fmt.Errorf("apply %s: %w", r.Kind(), err)
	}
	report.Applied = len(apply)

	logger.Info("pull finished", "fetched", report.Fetched, "applied", report.Applied, "skipped", report.Skipped)
	return report, nil
}
