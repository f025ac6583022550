// Package commands implements the CLI commands for archlint.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/archlint/internal/app"
	"go.trai.ch/archlint/internal/build"
	"go.trai.ch/archlint/internal/core/domain"
)

// CLI represents the command line interface for archlint.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Analyze(ctx context.Context, opts app.AnalyzeOptions) (*domain.AnalysisResult, error)
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, root string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "archlint",
		Short:         "Enforce architecture rules and find circular imports",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(build.Summary() + "\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAnalyzeCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// rootArg returns the project root named on the command line, or ".".
func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, pretty, plain, or json")
	cmd.Flags().Bool("ci", false, "Use plain output (shorthand for --output-mode=plain)")
}

func outputMode(cmd *cobra.Command) string {
	mode, _ := cmd.Flags().GetString("output-mode")
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		return "plain"
	}
	return mode
}
