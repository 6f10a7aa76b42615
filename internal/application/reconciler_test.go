package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcilerPushMarksSyncedOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newMovableClock(t, baseTime)
	store := newOpenStore(t, clock)
	remote := mocks.NewMockRemoteSource[domain.PostID, domain.Post](t)

	draft := domain.MarkDirty(domain.Post{ID: "p-1", Title: "offline"})
	require.NoError(t, store.Posts.PutAll(ctx, []domain.Post{draft, {ID: "p-2", Title: "clean"}}))

	remote.EXPECT().Push(mockAnyContext(), draft).Return(nil).Once()

	clock.advance(time.Minute)
	report, err := NewReconciler(store.Posts, remote, nil, clock).Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, PushReport{Attempted: 1, Pushed: 1}, report)

	got, ok := store.Posts.Get(ctx, "p-1")
	require.True(t, ok)
	assert.False(t, got.NeedsSync)
	assert.True(t, got.LastSynced.Equal(baseTime.Add(time.Minute)))
	assert.Empty(t, store.Posts.Pending(ctx))
}

func TestReconcilerPushAfterFavoriteToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newMovableClock(t, baseTime)
	store := newOpenStore(t, clock)
	remote := mocks.NewMockRemoteSource[domain.DesignID, domain.Design](t)

	require.NoError(t, store.Designs.Put(ctx, domain.MarkDirty(domain.Design{ID: 1, Name: "Koi"})))

	design, ok := store.Designs.Get(ctx, 1)
	require.True(t, ok)
	require.NoError(t, store.Designs.Put(ctx, domain.ToggleFavorite(design, true)))

	remote.EXPECT().Push(mockAnyContext(), mock.MatchedBy(func(d domain.Design) bool {
		return d.ID == 1 && d.IsFavorite && d.NeedsSync
	})).Return(nil).Once()

	pushedAt := baseTime.Add(5 * time.Minute)
	clock.advance(5 * time.Minute)
	report, err := NewReconciler(store.Designs, remote, nil, clock).Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, PushReport{Attempted: 1, Pushed: 1}, report)

	got, ok := store.Designs.Get(ctx, 1)
	require.True(t, ok)
	assert.True(t, got.IsFavorite)
	assert.False(t, got.NeedsSync)
	assert.True(t, got.LastSynced.Equal(pushedAt))
}

func TestReconcilerPushKeepsFailedRecordsPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newOpenStore(t, newMovableClock(t, baseTime))
	remote := mocks.NewMockRemoteSource[domain.DesignID, domain.Design](t)

	require.NoError(t, store.Designs.PutAll(ctx, []domain.Design{
		{ID: 1, SyncState: domain.SyncState{NeedsSync: true}},
		{ID: 2, SyncState: domain.SyncState{NeedsSync: true}},
	}))

	remote.EXPECT().Push(mockAnyContext(), mock.MatchedBy(func(d domain.Design) bool { return d.ID == 1 })).
		Return(errors.New("503 service unavailable"))
	remote.EXPECT().Push(mockAnyContext(), mock.MatchedBy(func(d domain.Design) bool { return d.ID == 2 })).
		Return(nil)

	report, err := NewReconciler(store.Designs, remote, nil, nil).Push(ctx)
	require.NoError(t, err)
	assert.Equal(t, PushReport{Attempted: 2, Pushed: 1, Failed: 1}, report)

	pending := store.Designs.Pending(ctx)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.DesignID(1), pending[0].ID)
}

func TestReconcilerPushStopsOnExpiredSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newOpenStore(t, newMovableClock(t, baseTime))
	remote := mocks.NewMockRemoteSource[domain.ArtworkID, domain.Artwork](t)

	require.NoError(t, store.Artworks.PutAll(ctx, []domain.Artwork{
		{ID: 1, SyncState: domain.SyncState{NeedsSync: true}},
		{ID: 2, SyncState: domain.SyncState{NeedsSync: true}},
	}))

	remote.EXPECT().Push(mockAnyContext(), mock.Anything).Return(domain.ErrSessionExpired).Once()

	report, err := NewReconciler(store.Artworks, remote, nil, nil).Push(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, PushReport{Attempted: 1, Failed: 1}, report)
	assert.Len(t, store.Artworks.Pending(ctx), 2)
}

func TestReconcilerPushHonoursCancellation(t *testing.T) {
	t.Parallel()

	store := newOpenStore(t, newMovableClock(t, baseTime))
	remote := mocks.NewMockRemoteSource[domain.DesignID, domain.Design](t)
	require.NoError(t, store.Designs.Put(context.Background(), domain.Design{ID: 1, SyncState: domain.SyncState{NeedsSync: true}}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReconciler(store.Designs, remote, nil, nil).Push(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReconcilerPullSkipsPendingLocalRecords(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newMovableClock(t, baseTime)
	store := newOpenStore(t, clock)
	remote := mocks.NewMockRemoteSource[domain.DesignID, domain.Design](t)

	require.NoError(t, store.Designs.PutAll(ctx, []domain.Design{
		{ID: 1, Name: "local edit", SyncState: domain.SyncState{NeedsSync: true, IsFavorite: true}},
		{ID: 2, Name: "old"},
	}))

	remote.EXPECT().Fetch(mockAnyContext()).Return([]domain.Design{
		{ID: 1, Name: "remote"},
		{ID: 2, Name: "remote two"},
		{ID: 3, Name: "new"},
	}, nil)

	report, err := NewReconciler(store.Designs, remote, nil, clock).Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, PullReport{Fetched: 3, Applied: 2, Skipped: 1}, report)

	local, ok := store.Designs.Get(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "local edit", local.Name)
	assert.True(t, local.NeedsSync)

	updated, ok := store.Designs.Get(ctx, 2)
	require.True(t, ok)
	assert.Equal(t, "remote two", updated.Name)
	assert.True(t, updated.LastSynced.Equal(baseTime))
	assert.False(t, updated.NeedsSync)

	all := store.Designs.GetAll(ctx)
	require.Len(t, all, 3)
	assert.Equal(t, domain.DesignID(3), all[2].ID)
}

func TestReconcilerPullFetchError(t *testing.T) {
	t.Parallel()

	store := newOpenStore(t, newMovableClock(t, baseTime))
	remote := mocks.NewMockRemoteSource[domain.PostID, domain.Post](t)
	remote.EXPECT().Fetch(mockAnyContext()).Return(nil, errors.New("offline"))

	_, err := NewReconciler(store.Posts, remote, nil, nil).Pull(context.Background())
	assert.ErrorContains(t, err, "fetch posts: offline")
}
