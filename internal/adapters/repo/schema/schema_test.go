package schema

import (
	"testing"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCodecsPreserveEveryField(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	synced := created.Add(90 * time.Minute)

	design := domain.Design{
		ID:          12,
		Name:        "Koi",
		Description: "sleeve",
		Style:       "irezumi",
		ImageURLs:   []string{"a.png", "b.png"},
		IsLiked:     true,
		LikeCount:   4,
		CreatedAt:   created,
		SyncState:   domain.SyncState{LastSynced: synced, NeedsSync: true, IsFavorite: true},
	}
	assert.Equal(t, design, Designs.Decode(Designs.Encode(design)))
	assert.Equal(t, "12", Designs.Key(Designs.Encode(design)))

	artwork := domain.Artwork{ID: 3, Name: "Crane", CreatedAt: created}
	assert.Equal(t, artwork, Artworks.Decode(Artworks.Encode(artwork)))

	post := domain.Post{
		ID:         "p-1",
		Title:      "Aftercare",
		Content:    "keep it moist",
		AuthorID:   "u-1",
		AuthorName: "Mia",
		CreatedAt:  created,
		SyncState:  domain.SyncState{NeedsSync: true},
	}
	assert.Equal(t, post, Posts.Decode(Posts.Encode(post)))
	assert.Equal(t, "p-1", Posts.Key(Posts.Encode(post)))
}

func TestEncodeCopiesImageURLs(t *testing.T) {
	t.Parallel()

	urls := []string{"a.png"}
	encoded := Designs.Encode(domain.Design{ID: 1, ImageURLs: urls})
	urls[0] = "changed.png"

	assert.Equal(t, []string{"a.png"}, encoded.ImageURLs)
}

func TestParseTimeToleratesGarbage(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseTime("").IsZero())
	assert.True(t, ParseTime("yesterday").IsZero())
	assert.Equal(t, "", FormatTime(time.Time{}))
}

func TestCodecsNormalizeEmptyURLsAndTimeZone(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	created := time.Date(2026, 2, 14, 20, 0, 0, 0, tokyo)

	decoded := Designs.Decode(Designs.Encode(domain.Design{ID: 1, ImageURLs: []string{}, CreatedAt: created}))

	assert.Nil(t, decoded.ImageURLs)
	assert.True(t, decoded.CreatedAt.Equal(created))
	assert.Equal(t, time.UTC, decoded.CreatedAt.Location())
}
