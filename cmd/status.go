package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the cache, the session and the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			lastSync := "never"
			if at := app.store.Settings.LastSyncTime(ctx); !at.IsZero() {
				lastSync = at.Format(time.RFC3339)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "backend:   %s\n", app.cfg.Backend)
			_, _ = fmt.Fprintf(out, "session:   %s\n", sessionSummary(ctx, app))
			_, _ = fmt.Fprintf(out, "last sync: %s\n", lastSync)
			_, _ = fmt.Fprintf(out, "designs:   %s\n", countSummary(len(app.store.Designs.GetAll(ctx)), len(app.store.Designs.Pending(ctx)), len(app.store.Designs.GetFavorites(ctx))))
			_, _ = fmt.Fprintf(out, "artworks:  %s\n", countSummary(len(app.store.Artworks.GetAll(ctx)), len(app.store.Artworks.Pending(ctx)), len(app.store.Artworks.GetFavorites(ctx))))
			_, err = fmt.Fprintf(out, "posts:     %s\n", countSummary(len(app.store.Posts.GetAll(ctx)), len(app.store.Posts.Pending(ctx)), len(app.store.Posts.GetFavorites(ctx))))
			return err
		},
	}
}

func countSummary(total, pending, favorites int) string {
	return fmt.Sprintf("%d cached, %d pending, %d favorites", total, pending, favorites)
}

func sessionSummary(ctx context.Context, app *app) string {
	session := app.store.Session.GetSession(ctx)
	if session.RefreshToken == "" {
		return "none"
	}
	if !app.store.Session.HasValidSession(ctx) {
		return fmt.Sprintf("expired (issued %s)", session.IssuedAt.Format(time.RFC3339))
	}
	if session.IssuedAt.IsZero() {
		return "valid (no timestamp, legacy session)"
	}

	remaining := session.IssuedAt.Add(app.store.Session.Window()).Sub(app.now())
	days := int(math.Ceil(remaining.Hours() / 24))
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("valid, expires in %d %s", days, unit)
}
