package application

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/bnema/offline-cache/internal/adapters/repo/toml"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/logging"
	"github.com/bnema/offline-cache/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// movableClock is a MockClock whose time the test can move.
type movableClock struct {
	*mocks.MockClock
	now time.Time
}

func newMovableClock(t *testing.T, now time.Time) *movableClock {
	c := &movableClock{MockClock: mocks.NewMockClock(t), now: now}
	c.EXPECT().Now().RunAndReturn(func() time.Time { return c.now }).Maybe()
	return c
}

func (c *movableClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestMedium(t *testing.T) *tomlrepo.Medium {
	t.Helper()

	cfg := viper.New()
	cfg.Set(tomlrepo.StoreDirKey, t.TempDir())

	medium, err := tomlrepo.NewMedium(cfg)
	require.NoError(t, err)
	return medium
}

func newOpenStore(t *testing.T, clock *movableClock) *Store {
	t.Helper()

	store := NewStore(newTestMedium(t), clock, logging.Discard(), 0)
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func TestStoreOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(newTestMedium(t), newMovableClock(t, baseTime), logging.Discard(), 0)

	assert.False(t, store.IsOpen())
	require.NoError(t, store.Open(ctx))
	require.NoError(t, store.Open(ctx))
	assert.True(t, store.IsOpen())

	require.NoError(t, store.Designs.Put(ctx, domain.Design{ID: 1, Name: "Koi"}))

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
	assert.False(t, store.IsOpen())
}

func TestStoreUseBeforeOpenDegrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(newTestMedium(t), newMovableClock(t, baseTime), logging.Discard(), 0)

	assert.Empty(t, store.Designs.GetAll(ctx))
	_, ok := store.Posts.Get(ctx, "p-1")
	assert.False(t, ok)
	assert.True(t, store.Settings.IsFirstLaunch(ctx))
	assert.False(t, store.Session.HasValidSession(ctx))
	assert.True(t, store.Session.GetSession(ctx).IsZero())

	assert.ErrorIs(t, store.Designs.Put(ctx, domain.Design{ID: 1}), domain.ErrStoreNotOpen)
	assert.ErrorIs(t, store.Settings.CompleteFirstLaunch(ctx), domain.ErrStoreNotOpen)
	assert.ErrorIs(t, store.Session.SaveSession(ctx, "a", "r", "u"), domain.ErrStoreNotOpen)
}

func TestStoreDataSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	medium := newTestMedium(t)
	clock := newMovableClock(t, baseTime)

	first := NewStore(medium, clock, logging.Discard(), 0)
	require.NoError(t, first.Open(ctx))
	require.NoError(t, first.Artworks.Put(ctx, domain.Artwork{ID: 5, Name: "Heron"}))
	require.NoError(t, first.Session.SaveSession(ctx, "a", "r", "u"))
	require.NoError(t, first.Close())

	second := NewStore(medium, clock, logging.Discard(), 0)
	require.NoError(t, second.Open(ctx))
	defer second.Close()

	artwork, ok := second.Artworks.Get(ctx, 5)
	require.True(t, ok)
	assert.Equal(t, "Heron", artwork.Name)
	assert.True(t, second.Session.HasValidSession(ctx))
}

func TestStoreReadsDegradeOnCorruptFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	medium := newTestMedium(t)
	store := NewStore(medium, newMovableClock(t, baseTime), logging.Discard(), 0)
	require.NoError(t, store.Open(ctx))
	defer store.Close()

	require.NoError(t, store.Designs.Put(ctx, domain.Design{ID: 1, SyncState: domain.SyncState{NeedsSync: true, IsFavorite: true}}))
	require.NoError(t, store.Session.SaveSession(ctx, "a", "r", "u"))

	for _, name := range []string{"designs.toml", "settings.toml"} {
		require.NoError(t, os.WriteFile(filepath.Join(medium.Dir(), name), []byte("garbage = ["), 0o600))
	}

	assert.Empty(t, store.Designs.GetAll(ctx))
	assert.Empty(t, store.Designs.GetFavorites(ctx))
	assert.Empty(t, store.Designs.Pending(ctx))
	_, ok := store.Designs.Get(ctx, 1)
	assert.False(t, ok)

	assert.True(t, store.Settings.IsFirstLaunch(ctx))
	assert.False(t, store.Session.HasValidSession(ctx))

	assert.NotPanics(t, func() {
		assert.Error(t, store.Designs.Put(ctx, domain.Design{ID: 2}))
	})
}
