package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/offline-cache/internal/application"
	"github.com/bnema/offline-cache/internal/domain"
	"github.com/spf13/cobra"
)

func newSyncCmd(app *app) *cobra.Command {
	var pushOnly bool
	var pullOnly bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push pending records, then pull the remote snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if !app.store.Session.HasValidSession(ctx) {
				return fmt.Errorf("no usable session, run `oc session save`: %w", domain.ErrSessionExpired)
			}

			mode := application.SyncAll
			switch {
			case pushOnly:
				mode = application.SyncPushOnly
			case pullOnly:
				mode = application.SyncPullOnly
			}

			progress, err := runSyncProgress(ctx, cmd.ErrOrStderr(), app.sync, mode)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			report := progress.report
			if report.Failed() == 0 && !report.CompletedAt.IsZero() && app.store.Settings.IsFirstLaunch(ctx) {
				_ = app.store.Settings.CompleteFirstLaunch(ctx)
			}

			_, err = io.WriteString(cmd.OutOrStdout(), progress.Summary())
			return err
		},
	}

	cmd.Flags().BoolVar(&pushOnly, "push-only", false, "Only push pending records")
	cmd.Flags().BoolVar(&pullOnly, "pull-only", false, "Only pull the remote snapshot")
	cmd.MarkFlagsMutuallyExclusive("push-only", "pull-only")

	return cmd
}
