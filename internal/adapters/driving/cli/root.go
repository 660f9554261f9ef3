// Package cli implements the oceanbot command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ocean48/oceanbot/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "oceanbot",
	Short: "Document-grounded assistant for restaurant staff",
	Long: `OceanBot answers staff questions from the restaurant's own documents.

Upload menus, wine lists, allergen matrices and recipes; they are chunked,
embedded and stored in a vector index. Questions are answered only from
what was retrieved, following the policy in ~/.oceanbot/prompts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.oceanbot)")
}

// Execute runs the root command and releases any services it opened.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}
