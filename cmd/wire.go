package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bnema/offline-cache/internal/adapters/remote/httpapi"
	recordsrender "github.com/bnema/offline-cache/internal/adapters/render/records"
	sqliterepo "github.com/bnema/offline-cache/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/offline-cache/internal/adapters/repo/toml"
	"github.com/bnema/offline-cache/internal/application"
	"github.com/bnema/offline-cache/internal/config"
	"github.com/bnema/offline-cache/internal/logging"
	"github.com/bnema/offline-cache/internal/ports"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *application.Store
	sync    *application.SyncService
	render  func([]recordsrender.Row, recordsrender.RenderOptions) (string, error)
	now     func() time.Time
	closers []io.Closer
}

func wireApp(stderr io.Writer) (*app, error) {
	v, cfg, err := config.Load(config.Options{})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}, stderr)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	medium, err := newMedium(cfg.Backend, v)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire %s store: %w", cfg.Backend, err)
	}

	clock := ports.SystemClock{}
	store := application.NewStore(medium, clock, logger, cfg.SessionWindow)

	client, err := httpapi.NewClient(cfg.RemoteBaseURL, nil, store.Session)
	if err != nil {
		_ = logCloser.Close()
		return nil, fmt.Errorf("wire remote client: %w", err)
	}

	limiter := rate.NewLimiter(pushLimit(cfg.PushRate), 1)
	syncService := application.NewSyncService(store.Settings, clock,
		application.NewReconciler(store.Designs, client.Designs(), limiter, clock),
		application.NewReconciler(store.Artworks, client.Artworks(), limiter, clock),
		application.NewReconciler(store.Posts, client.Posts(), limiter, clock),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		sync:    syncService,
		render:  recordsrender.Render,
		now:     clock.Now,
		closers: []io.Closer{store, logCloser},
	}, nil
}

func newMedium(backend string, v *viper.Viper) (ports.Medium, error) {
	switch backend {
	case config.BackendSQLite:
		return sqliterepo.NewMedium(v)
	default:
		return tomlrepo.NewMedium(v)
	}
}

func pushLimit(perSecond float64) rate.Limit {
	if perSecond <= 0 {
		return rate.Inf
	}
	return rate.Limit(perSecond)
}

// openStore opens the store on first use and carries the logger on the returned context.
func (a *app) openStore(ctx context.Context) (context.Context, error) {
	ctx = logging.WithLogger(ctx, a.logger)
	if err := a.store.Open(ctx); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			a.logger.Warn("shutdown", "error", err)
		}
	}
}
