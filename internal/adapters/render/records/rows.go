package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
)

// Row is the kind-independent line shown for one cached record.
type Row struct {
	ID         string
	Title      string
	Detail     string
	Favorite   bool
	Pending    bool
	LastSynced time.Time
}

func DesignRows(designs []domain.Design) []Row {
	rows := make([]Row, 0, len(designs))
	for _, d := range designs {
		rows = append(rows, itemRow(d.ID.String(), d.Name, d.Style, d.LikeCount, d.IsLiked, d.SyncState))
	}
	return rows
}

func ArtworkRows(artworks []domain.Artwork) []Row {
	rows := make([]Row, 0, len(artworks))
	for _, a := range artworks {
		rows = append(rows, itemRow(a.ID.String(), a.Name, a.Style, a.LikeCount, a.IsLiked, a.SyncState))
	}
	return rows
}

func PostRows(posts []domain.Post) []Row {
	rows := make([]Row, 0, len(posts))
	for _, p := range posts {
		detail := ""
		if author := strings.TrimSpace(p.AuthorName); author != "" {
			detail = "by " + author
		}
		rows = append(rows, Row{
			ID:         p.ID.String(),
			Title:      p.Title,
			Detail:     detail,
			Favorite:   p.IsFavorite,
			Pending:    p.NeedsSync,
			LastSynced: p.LastSynced,
		})
	}
	return rows
}

func itemRow(id, name, style string, likes int, liked bool, state domain.SyncState) Row {
	parts := make([]string, 0, 2)
	if style = strings.TrimSpace(style); style != "" {
		parts = append(parts, style)
	}
	likesLabel := compactCount(likes) + " likes"
	if likes == 1 {
		likesLabel = "1 like"
	}
	if liked {
		likesLabel += " (liked)"
	}
	parts = append(parts, likesLabel)

	return Row{
		ID:         id,
		Title:      name,
		Detail:     strings.Join(parts, ", "),
		Favorite:   state.IsFavorite,
		Pending:    state.NeedsSync,
		LastSynced: state.LastSynced,
	}
}

func compactCount(v int) string {
	switch {
	case v < 1_000:
		return fmt.Sprintf("%d", v)
	case v < 1_000_000:
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	default:
		return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
	}
}
