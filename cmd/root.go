package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "oc",
		Short:         "Offline cache CLI (oc): inspect and sync the on-device record cache",
		Long:          "oc (offline cache) inspects the cached designs, artworks and posts, tracks records waiting to be pushed, manages the remembered login session and runs sync against the remote service.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(cmdStderr{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newDesignCmd(app),
		newArtworkCmd(app),
		newPostCmd(app),
		newSessionCmd(app),
		newSettingCmd(app),
		newStatusCmd(app),
		newSyncCmd(app),
	)

	return rootCmd, app.close
}

// cmdStderr resolves the command's error stream on every write, so SetErr after wiring still applies.
type cmdStderr struct {
	cmd *cobra.Command
}

func (w cmdStderr) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}

var _ io.Writer = cmdStderr{}
