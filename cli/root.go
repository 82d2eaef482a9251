package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	statePath  string
	backend    string
}

func newRootCmd(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "nexus-daily",
		Short: "nexus-daily - a daily task widget for the terminal",
		Long: `nexus-daily keeps today's tasks, a completion streak and a focus timer in one place.

Run without a command to open the interactive view.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default "+defaultConfigHint+")")
	root.PersistentFlags().StringVar(&opts.statePath, "state", "", "state file or database, overrides state_path")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", `storage backend, "json" or "sqlite"`)

	root.AddCommand(
		newTodayCmd(opts),
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDoneCmd(opts),
		newReopenCmd(opts),
		newRemoveCmd(opts),
		newStatsCmd(opts),
		newSettingsCmd(opts),
		newFocusCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

const defaultConfigHint = "~/.config/nexus-daily/config.yaml"

// Execute runs the root command
func Execute(version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
