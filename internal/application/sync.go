package application

import (
	"context"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports"
	"golang.org/x/sync/errgroup"
)

type SyncMode int

const (
	SyncAll SyncMode = iota
	SyncPushOnly
	SyncPullOnly
)

type KindSyncer interface {
	Kind() domain.Kind
	Push(ctx context.Context) (PushReport, error)
	Pull(ctx context.Context) (PullReport, error)
}

type KindReport struct {
	Kind domain.Kind
	Push PushReport
	Pull PullReport
}

type SyncReport struct {
	Kinds []KindReport
	// CompletedAt is zero unless the run pulled every kind without failures.
	CompletedAt time.Time
}

func (r SyncReport) Failed() int {
	failed := 0
	for _, kind := range r.Kinds {
		failed += kind.Push.Failed
	}
	return failed
}

type SyncService struct {
	settings *Settings
	clock    ports.Clock
	syncers  []KindSyncer
}

func NewSyncService(settings *Settings, clock ports.Clock, syncers ...KindSyncer) *SyncService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SyncService{settings: settings, clock: clock, syncers: syncers}
}

func (s *SyncService) Kinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(s.syncers))
	for _, syncer := range s.syncers {
		kinds = append(kinds, syncer.Kind())
	}
	return kinds
}

// Sync runs every kind concurrently, push before pull within a kind.
// last_sync_time moves only after a clean run that pulled.
func (s *SyncService) Sync(ctx context.Context, mode SyncMode) (SyncReport, error) {
	reports := make([]KindReport, len(s.syncers))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, syncer := range s.syncers {
		reports[i].Kind = syncer.Kind()
		group.Go(func() error {
			if mode != SyncPullOnly {
				push, err := syncer.Push(groupCtx)
				reports[i].Push = push
				if err != nil {
					return err
				}
			}
			if mode != SyncPushOnly {
				pull, err := syncer.Pull(groupCtx)
				reports[i].Pull = pull
				if err != nil {
					return err
				}
			}
			return nil
		})
	}

	report := SyncReport{Kinds: reports}
	if err := group.Wait(); err != nil {
		return report, err
	}

	if mode != SyncPushOnly && report.Failed() == 0 {
		report.CompletedAt = s.clock.Now()
		if err := s.settings.SetLastSyncTime(ctx, report.CompletedAt); err != nil {
			return report, err
		}
	}

	return report, nil
}
