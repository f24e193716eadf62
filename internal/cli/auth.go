package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/promptpack/ghfrag/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store a GitHub access token in the config file",
	Long: `Prompts for a personal access token and stores it in
~/.ghfrag/config.toml. The token is used for API requests and for fetching
code references through the contents API.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Print("GitHub access token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}

		token := strings.TrimSpace(string(raw))
		if token == "" {
			return errors.New("no token entered")
		}

		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		if err := config.Save(path, &config.Settings{Token: token}); err != nil {
			return err
		}

		cmd.Printf("Token saved to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
