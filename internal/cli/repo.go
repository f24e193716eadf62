package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptpack/ghfrag"
	"github.com/promptpack/ghfrag/internal/config"
)

var repoCmd = &cobra.Command{
	Use:   "repo [owner/repo | repository URL]",
	Short: "Load every text file of a repository as fragments",
	Long: `Clones a shallow copy of the repository's default branch and emits one
fragment per UTF-8 decodable file. Binary files are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := ghfrag.New(config.ResolveToken(flagToken))

		fragments, err := loader.LoadRepo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeFragments(cmd, fragments)
	},
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
