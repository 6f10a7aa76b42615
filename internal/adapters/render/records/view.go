package records

import (
	"fmt"
	"math"
	"time"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Kind domain.Kind
	Now  time.Time
	// StaleAfter flags records synced longer ago than this. Zero disables the flag.
	StaleAfter time.Duration
}

func renderView(rows []Row, opts RenderOptions, s styles) string {
	pending, favorites := 0, 0
	for _, row := range rows {
		if row.Pending {
			pending++
		}
		if row.Favorite {
			favorites++
		}
	}

	lines := []string{
		s.title.Render(fmt.Sprintf("Cached %s", opts.Kind)),
		s.header.Render(fmt.Sprintf("records: %d  pending: %d  favorites: %d", len(rows), pending, favorites)),
	}

	if len(rows) == 0 {
		lines = append(lines, s.empty.Render("Nothing cached."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, row := range rows {
		lines = append(lines, renderRow(row, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRow(row Row, opts RenderOptions, s styles) string {
	marker := " "
	if row.Favorite {
		marker = s.favorite.Render("*")
	}

	title := row.Title
	if title == "" {
		title = "(untitled)"
	}

	parts := []string{marker, " ", s.id.Render("#" + row.ID), " ", s.name.Render(title)}
	if row.Detail != "" {
		parts = append(parts, " ", s.detail.Render(row.Detail))
	}
	if row.Pending {
		parts = append(parts, " ", s.pending.Render("[pending]"))
	}
	parts = append(parts, " ", s.synced.Render("("+formatSynced(row.LastSynced, opts.Now)+")"))
	if isStale(row.LastSynced, opts.Now, opts.StaleAfter) {
		parts = append(parts, " ", s.pending.Render("[stale]"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func formatSynced(lastSynced, now time.Time) string {
	if lastSynced.IsZero() {
		return "never synced"
	}
	if now.IsZero() {
		return "synced " + lastSynced.Format(time.RFC3339)
	}

	elapsed := now.Sub(lastSynced)
	switch {
	case elapsed < time.Minute:
		return "synced just now"
	case elapsed < time.Hour:
		return plural("synced %d %s ago", int(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural("synced %d %s ago", int(elapsed.Hours()), "hour")
	default:
		return plural("synced %d %s ago", int(math.Floor(elapsed.Hours()/24)), "day")
	}
}

func isStale(lastSynced, now time.Time, maxAge time.Duration) bool {
	if lastSynced.IsZero() || now.IsZero() || maxAge <= 0 {
		return false
	}

	return now.Sub(lastSynced) > maxAge
}

func plural(format string, n int, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf(format, n, unit)
}
