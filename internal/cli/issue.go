package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptpack/ghfrag"
	"github.com/promptpack/ghfrag/internal/config"
)

var issueCmd = &cobra.Command{
	Use:   "issue [owner/repo/N[,N...] | issue URL]",
	Short: "Load issues with their comments as Markdown fragments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := ghfrag.New(config.ResolveToken(flagToken))

		fragments, err := loader.LoadIssues(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeFragments(cmd, fragments)
	},
}

func init() {
	rootCmd.AddCommand(issueCmd)
}
