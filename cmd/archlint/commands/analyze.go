package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/archlint/internal/app"
	"go.trai.ch/archlint/internal/core/domain"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a project and report rule violations and circular imports",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")

			result, err := c.app.Analyze(cmd.Context(), app.AnalyzeOptions{
				Root:       rootArg(args),
				NoCache:    noCache,
				OutputMode: outputMode(cmd),
			})
			if err != nil {
				return err
			}
			if result.HasBlockingIssues() {
				return domain.ErrArchitectureViolations
			}
			return nil
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Ignore the analysis cache and analyze every file")
	addOutputFlags(cmd)
	return cmd
}
