package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/bnema/offline-cache/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	store    *Store
	clock    *movableClock
	designs  *mocks.MockRemoteSource[domain.DesignID, domain.Design]
	artworks *mocks.MockRemoteSource[domain.ArtworkID, domain.Artwork]
	posts    *mocks.MockRemoteSource[domain.PostID, domain.Post]
	service  *SyncService
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	f := &syncFixture{clock: newMovableClock(t, baseTime)}
	f.store = newOpenStore(t, f.clock)
	f.designs = mocks.NewMockRemoteSource[domain.DesignID, domain.Design](t)
	f.artworks = mocks.NewMockRemoteSource[domain.ArtworkID, domain.Artwork](t)
	f.posts = mocks.NewMockRemoteSource[domain.PostID, domain.Post](t)
	f.service = NewSyncService(f.store.Settings, f.clock,
		NewReconciler(f.store.Designs, f.designs, nil, f.clock),
		NewReconciler(f.store.Artworks, f.artworks, nil, f.clock),
		NewReconciler(f.store.Posts, f.posts, nil, f.clock),
	)

	return f
}

func TestSyncServiceRecordsLastSyncTimeOnCleanRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSyncFixture(t)

	require.NoError(t, f.store.Posts.Put(ctx, domain.MarkDirty(domain.Post{ID: "p-1"})))

	f.posts.EXPECT().Push(mockAnyContext(), domain.MarkDirty(domain.Post{ID: "p-1"})).Return(nil)
	f.posts.EXPECT().Fetch(mockAnyContext()).Return([]domain.Post{{ID: "p-1", Title: "server"}}, nil)
	f.designs.EXPECT().Fetch(mockAnyContext()).Return([]domain.Design{{ID: 1}}, nil)
	f.artworks.EXPECT().Fetch(mockAnyContext()).Return(nil, nil)

	f.clock.advance(time.Hour)
	report, err := f.service.Sync(ctx, SyncAll)
	require.NoError(t, err)

	require.Len(t, report.Kinds, 3)
	assert.Equal(t, domain.KindPosts, report.Kinds[2].Kind)
	assert.Equal(t, 1, report.Kinds[2].Push.Pushed)
	assert.Equal(t, 1, report.Kinds[2].Pull.Applied)
	assert.Equal(t, 0, report.Failed())
	assert.True(t, report.CompletedAt.Equal(baseTime.Add(time.Hour)))
	assert.True(t, f.store.Settings.LastSyncTime(ctx).Equal(baseTime.Add(time.Hour)))

	post, ok := f.store.Posts.Get(ctx, "p-1")
	require.True(t, ok)
	assert.Equal(t, "server", post.Title)
	assert.False(t, post.NeedsSync)
}

func TestSyncServiceKeepsLastSyncTimeWhenPushFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSyncFixture(t)

	require.NoError(t, f.store.Designs.Put(ctx, domain.MarkDirty(domain.Design{ID: 9})))

	f.designs.EXPECT().Push(mockAnyContext(), domain.MarkDirty(domain.Design{ID: 9})).Return(errors.New("boom"))
	f.designs.EXPECT().Fetch(mockAnyContext()).Return([]domain.Design{{ID: 9, Name: "server"}}, nil)
	f.artworks.EXPECT().Fetch(mockAnyContext()).Return(nil, nil)
	f.posts.EXPECT().Fetch(mockAnyContext()).Return(nil, nil)

	report, err := f.service.Sync(ctx, SyncAll)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.True(t, report.CompletedAt.IsZero())
	assert.True(t, f.store.Settings.LastSyncTime(ctx).IsZero())
	assert.Equal(t, 1, report.Kinds[0].Pull.Skipped)

	design, ok := f.store.Designs.Get(ctx, 9)
	require.True(t, ok)
	assert.True(t, design.NeedsSync)
	assert.Empty(t, design.Name)
}

func TestSyncServicePushOnlySkipsPull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSyncFixture(t)

	report, err := f.service.Sync(ctx, SyncPushOnly)
	require.NoError(t, err)
	assert.True(t, report.CompletedAt.IsZero())
	assert.True(t, f.store.Settings.LastSyncTime(ctx).IsZero())
}

func TestSyncServiceReturnsFetchError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newSyncFixture(t)

	f.designs.EXPECT().Fetch(mockAnyContext()).Return(nil, domain.ErrSessionExpired)
	f.artworks.EXPECT().Fetch(mockAnyContext()).Return(nil, nil).Maybe()
	f.posts.EXPECT().Fetch(mockAnyContext()).Return(nil, nil).Maybe()

	_, err := f.service.Sync(ctx, SyncPullOnly)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.True(t, f.store.Settings.LastSyncTime(ctx).IsZero())
}

func TestSyncServiceKindsFollowRegistrationOrder(t *testing.T) {
	t.Parallel()

	f := newSyncFixture(t)

	assert.Equal(t, []domain.Kind{domain.KindDesigns, domain.KindArtworks, domain.KindPosts}, f.service.Kinds())
}
