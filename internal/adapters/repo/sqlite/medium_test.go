package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMedium(t *testing.T) *Medium {
	t.Helper()

	cfg := viper.New()
	cfg.Set(StoreDirKey, t.TempDir())

	medium, err := NewMedium(cfg)
	require.NoError(t, err)
	require.NoError(t, medium.Open(context.Background()))
	t.Cleanup(func() { _ = medium.Close() })

	return medium
}

func TestCollectionUpsertKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	designs := newTestMedium(t).Designs()

	require.NoError(t, designs.SaveAll(ctx, []domain.Design{
		{ID: 3, Name: "Koi"},
		{ID: 1, Name: "Crane"},
	}))
	require.NoError(t, designs.Save(ctx, domain.Design{ID: 3, Name: "Koi v2"}))

	records, err := designs.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.DesignID(3), records[0].ID)
	assert.Equal(t, "Koi v2", records[0].Name)
	assert.Equal(t, domain.DesignID(1), records[1].ID)
}

func TestCollectionRoundTripsSyncState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	posts := newTestMedium(t).Posts()
	synced := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	post := domain.Post{
		ID:         "p-1",
		Title:      "hello",
		AuthorName: "ana",
		SyncState:  domain.SyncState{LastSynced: synced, NeedsSync: true, IsFavorite: true},
	}
	require.NoError(t, posts.Save(ctx, post))

	got, err := posts.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.True(t, got.LastSynced.Equal(synced))
	assert.True(t, got.NeedsSync)
	assert.True(t, got.IsFavorite)
}

func TestCollectionMissingRecordAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	artworks := newTestMedium(t).Artworks()

	_, err := artworks.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	require.NoError(t, artworks.Save(ctx, domain.Artwork{ID: 9, Name: "Heron"}))
	require.NoError(t, artworks.Delete(ctx, 9))
	require.NoError(t, artworks.Delete(ctx, 9))

	_, err = artworks.GetByID(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestCollectionClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	designs := newTestMedium(t).Designs()

	require.NoError(t, designs.SaveAll(ctx, []domain.Design{{ID: 1}, {ID: 2}}))
	require.NoError(t, designs.Clear(ctx))

	records, err := designs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSettingsPutAllAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	settings := newTestMedium(t).Settings()

	require.NoError(t, settings.PutAll(ctx, map[string]string{
		domain.SettingAuthAccessToken:  "a",
		domain.SettingAuthRefreshToken: "r",
	}))

	value, err := settings.Get(ctx, domain.SettingAuthRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "r", value)

	require.NoError(t, settings.Put(ctx, domain.SettingAuthRefreshToken, "r2"))
	value, err = settings.Get(ctx, domain.SettingAuthRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "r2", value)

	require.NoError(t, settings.Delete(ctx, domain.SettingAuthAccessToken, domain.SettingAuthRefreshToken))
	_, err = settings.Get(ctx, domain.SettingAuthAccessToken)
	assert.ErrorIs(t, err, domain.ErrSettingNotFound)
}

func TestMediumReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := viper.New()
	cfg.Set(StoreDirKey, t.TempDir())

	medium, err := NewMedium(cfg)
	require.NoError(t, err)
	require.NoError(t, medium.Open(ctx))
	require.NoError(t, medium.Open(ctx))
	require.NoError(t, medium.Designs().Save(ctx, domain.Design{ID: 4, Name: "Wave"}))
	require.NoError(t, medium.Close())
	require.NoError(t, medium.Close())

	_, err = medium.Designs().List(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreNotOpen)

	require.NoError(t, medium.Open(ctx))
	t.Cleanup(func() { _ = medium.Close() })

	got, err := medium.Designs().GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Wave", got.Name)
}

func TestMediumRejectsNewerDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, databaseName)

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.conn.ExecContext(ctx, "PRAGMA user_version=9")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	cfg := viper.New()
	cfg.Set(StoreDirKey, dir)
	medium, err := NewMedium(cfg)
	require.NoError(t, err)

	err = medium.Open(ctx)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported cache database schema version 9")
}
