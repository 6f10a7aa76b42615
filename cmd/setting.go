package cmd

import (
	"fmt"

	"github.com/bnema/offline-cache/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Inspect persisted settings",
	}

	cmd.AddCommand(newSettingShowCmd(app))

	return cmd
}

func newSettingShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every known setting, tokens masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}

			for _, setting := range app.store.Settings.Snapshot(ctx) {
				value := "(unset)"
				if setting.Present {
					value = setting.Value
					if isSecretSetting(setting.Name) {
						value = maskSecret(value)
					}
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", setting.Name, value); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func isSecretSetting(name string) bool {
	return name == domain.SettingAuthAccessToken || name == domain.SettingAuthRefreshToken
}
