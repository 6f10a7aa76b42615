package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the remembered login session",
	}

	cmd.AddCommand(
		newSessionSaveCmd(app),
		newSessionShowCmd(app),
		newSessionStatusCmd(app),
		newSessionClearCmd(app),
	)

	return cmd
}

func newSessionSaveCmd(app *app) *cobra.Command {
	var accessToken string
	var refreshToken string
	var userID string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Remember a session issued by the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(refreshToken) == "" {
				return errors.New("refresh token is empty")
			}

			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.store.Session.SaveSession(ctx, accessToken, refreshToken, userID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "session saved for %s\n", displayValue(userID))
			return err
		},
	}

	cmd.Flags().StringVar(&accessToken, "access-token", "", "Access token")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "Refresh token")
	cmd.Flags().StringVar(&userID, "user-id", "", "User id")
	_ = cmd.MarkFlagRequired("refresh-token")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the remembered session with tokens masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			session := app.store.Session.GetSession(ctx)
			issuedAt := "unknown (legacy session)"
			if !session.IssuedAt.IsZero() {
				issuedAt = session.IssuedAt.Format(time.RFC3339)
			}
			if session.IsZero() {
				issuedAt = "-"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "user:          %s\n", displayValue(session.UserID))
			_, _ = fmt.Fprintf(out, "access token:  %s\n", maskSecret(session.AccessToken))
			_, _ = fmt.Fprintf(out, "refresh token: %s\n", maskSecret(session.RefreshToken))
			_, err = fmt.Fprintf(out, "issued at:     %s\n", issuedAt)
			return err
		},
	}
}

func newSessionStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the remembered session can be resumed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "session: "+sessionSummary(ctx, app))
			return err
		},
	}
}

func newSessionClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the remembered session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			if err := app.store.Session.ClearSession(ctx); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
			return err
		},
	}
}

func maskSecret(value string) string {
	if value == "" {
		return "-"
	}
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", 4) + value[len(value)-4:]
}

func displayValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
