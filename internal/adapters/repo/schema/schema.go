// Package schema holds the persisted and wire shapes of cached records.
// Both storage media and the remote adapter encode through these codecs.
package schema

import (
	"time"

	"github.com/bnema/offline-cache/internal/domain"
)

const CurrentVersion = 1

type SyncState struct {
	LastSynced string `toml:"last_synced,omitempty" json:"last_synced,omitempty"`
	NeedsSync  bool   `toml:"needs_sync" json:"needs_sync"`
	IsFavorite bool   `toml:"is_favorite" json:"is_favorite"`
}

type Item struct {
	ID          int64     `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description,omitempty" json:"description,omitempty"`
	Style       string    `toml:"style,omitempty" json:"style,omitempty"`
	ImageURLs   []string  `toml:"image_urls,omitempty" json:"image_urls,omitempty"`
	IsLiked     bool      `toml:"is_liked" json:"is_liked"`
	LikeCount   int       `toml:"like_count" json:"like_count"`
	CreatedAt   string    `toml:"created_at,omitempty" json:"created_at,omitempty"`
	Sync        SyncState `toml:"sync" json:"sync"`
}

type Post struct {
	ID         string    `toml:"id" json:"id"`
	Title      string    `toml:"title" json:"title"`
	Content    string    `toml:"content,omitempty" json:"content,omitempty"`
	AuthorID   string    `toml:"author_id,omitempty" json:"author_id,omitempty"`
	AuthorName string    `toml:"author_name,omitempty" json:"author_name,omitempty"`
	CreatedAt  string    `toml:"created_at,omitempty" json:"created_at,omitempty"`
	Sync       SyncState `toml:"sync" json:"sync"`
}

// Codec maps a domain record to its schema shape S and back.
type Codec[K domain.Key, R domain.Record[K, R], S any] struct {
	Kind   domain.Kind
	Key    func(S) string
	Encode func(R) S
	Decode func(S) R
}

var Designs = Codec[domain.DesignID, domain.Design, Item]{
	Kind: domain.KindDesigns,
	Key:  itemKey,
	Encode: func(d domain.Design) Item {
		return Item{
			ID:          int64(d.ID),
			Name:        d.Name,
			Description: d.Description,
			Style:       d.Style,
			ImageURLs:   copyURLs(d.ImageURLs),
			IsLiked:     d.IsLiked,
			LikeCount:   d.LikeCount,
			CreatedAt:   FormatTime(d.CreatedAt),
			Sync:        encodeState(d.SyncState),
		}
	},
	Decode: func(item Item) domain.Design {
		return domain.Design{
			ID:          domain.DesignID(item.ID),
			Name:        item.Name,
			Description: item.Description,
			Style:       item.Style,
			ImageURLs:   copyURLs(item.ImageURLs),
			IsLiked:     item.IsLiked,
			LikeCount:   item.LikeCount,
			CreatedAt:   ParseTime(item.CreatedAt),
			SyncState:   decodeState(item.Sync),
		}
	},
}

var Artworks = Codec[domain.ArtworkID, domain.Artwork, Item]{
	Kind: domain.KindArtworks,
	Key:  itemKey,
	Encode: func(a domain.Artwork) Item {
		return Item{
			ID:          int64(a.ID),
			Name:        a.Name,
			Description: a.Description,
			Style:       a.Style,
			ImageURLs:   copyURLs(a.ImageURLs),
			IsLiked:     a.IsLiked,
			LikeCount:   a.LikeCount,
			CreatedAt:   FormatTime(a.CreatedAt),
			Sync:        encodeState(a.SyncState),
		}
	},
	Decode: func(item Item) domain.Artwork {
		return domain.Artwork{
			ID:          domain.ArtworkID(item.ID),
			Name:        item.Name,
			Description: item.Description,
			Style:       item.Style,
			ImageURLs:   copyURLs(item.ImageURLs),
			IsLiked:     item.IsLiked,
			LikeCount:   item.LikeCount,
			CreatedAt:   ParseTime(item.CreatedAt),
			SyncState:   decodeState(item.Sync),
		}
	},
}

var Posts = Codec[domain.PostID, domain.Post, Post]{
	Kind: domain.KindPosts,
	Key:  func(p Post) string { return p.ID },
	Encode: func(p domain.Post) Post {
		return Post{
			ID:         string(p.ID),
			Title:      p.Title,
			Content:    p.Content,
			AuthorID:   p.AuthorID,
			AuthorName: p.AuthorName,
			CreatedAt:  FormatTime(p.CreatedAt),
			Sync:       encodeState(p.SyncState),
		}
	},
	Decode: func(p Post) domain.Post {
		return domain.Post{
			ID:         domain.PostID(p.ID),
			Title:      p.Title,
			Content:    p.Content,
			AuthorID:   p.AuthorID,
			AuthorName: p.AuthorName,
			CreatedAt:  ParseTime(p.CreatedAt),
			SyncState:  decodeState(p.Sync),
		}
	},
}

func itemKey(item Item) string {
	return domain.DesignID(item.ID).String()
}

func encodeState(state domain.SyncState) SyncState {
	return SyncState{
		LastSynced: FormatTime(state.LastSynced),
		NeedsSync:  state.NeedsSync,
		IsFavorite: state.IsFavorite,
	}
}

func decodeState(state SyncState) domain.SyncState {
	return domain.SyncState{
		LastSynced: ParseTime(state.LastSynced),
		NeedsSync:  state.NeedsSync,
		IsFavorite: state.IsFavorite,
	}
}

func copyURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}

	out := make([]string, len(urls))
	copy(out, urls)
	return out
}

func ParseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func FormatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
