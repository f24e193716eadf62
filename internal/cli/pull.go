package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptpack/ghfrag"
	"github.com/promptpack/ghfrag/internal/config"
)

var pullCmd = &cobra.Command{
	Use:   "pr [owner/repo/N[,N...] | pull request URL]",
	Short: "Load pull requests as Markdown plus unified-diff fragments",
	Long: `Fetches each pull request with its comments and emits two fragments per
number: the rendered Markdown and the raw unified diff.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := ghfrag.New(config.ResolveToken(flagToken))

		fragments, err := loader.LoadPulls(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeFragments(cmd, fragments)
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
}
