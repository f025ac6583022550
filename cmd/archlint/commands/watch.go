package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/archlint/internal/adapters/watcher"
	"go.trai.ch/archlint/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Analyze a project, then re-check files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
			window, _ := cmd.Flags().GetDuration("debounce")

			return c.app.Watch(cmd.Context(), app.WatchOptions{
				Root:        rootArg(args),
				OutputMode:  outputMode(cmd),
				MetricsAddr: metricsAddr,
				Window:      window,
			})
		},
	}
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")
	cmd.Flags().Duration("debounce", watcher.DefaultDebounceWindow, "Quiet period before a batch of changes is analyzed")
	addOutputFlags(cmd)
	return cmd
}
