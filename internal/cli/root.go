// Package cli implements the ghfrag command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptpack/ghfrag/internal/logger"
)

var (
	flagVerbose bool
	flagToken   string
	flagOut     string
)

var rootCmd = &cobra.Command{
	Use:   "ghfrag",
	Short: "Load GitHub repositories, issues and pull requests as prompt fragments",
	Long: `ghfrag fetches content from GitHub and emits it as text fragments
suitable for prompt assembly: every file of a repository, or an issue or
pull request rendered as Markdown with its comments and inline code
references expanded.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "",
		"GitHub access token (defaults to $GITHUB_TOKEN, then the config file)")
	rootCmd.PersistentFlags().StringVarP(&flagOut, "out", "o", "",
		"write fragments to this directory instead of stdout")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
