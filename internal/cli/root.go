package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/polynav/polynav/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "polynav"

// Execute runs the polynav CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "Polynav explores the ICD-11 Foundation polyhierarchy",
		Long:         `Polynav is a CLI tool for crawling, inspecting, and interactively exploring the WHO ICD-11 Foundation concept graph, a polyhierarchy where concepts can have several parents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/polynav/config.toml)")

	root.AddCommand(newCrawlCmd(&configPath))
	root.AddCommand(newStatsCmd(&configPath))
	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newExploreCmd(&configPath))
	root.AddCommand(newStoreCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}
