package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptpack/ghfrag"
)

// writeFragments prints fragments to stdout separated by source markers, or
// writes one file per fragment when --out is set.
func writeFragments(cmd *cobra.Command, fragments []ghfrag.Fragment) error {
	if flagOut != "" {
		return writeFragmentFiles(flagOut, fragments)
	}

	for _, f := range fragments {
		cmd.Printf("---8<--- %s\n", f.Source)
		cmd.Print(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			cmd.Println()
		}
	}
	return nil
}

func writeFragmentFiles(dir string, fragments []ghfrag.Fragment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, f := range fragments {
		path := filepath.Join(dir, fragmentFileName(f.Source))
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write fragment %s: %w", f.Source, err)
		}
	}
	return nil
}

// fragmentFileName flattens a source identifier into a single path element.
func fragmentFileName(source string) string {
	r := strings.NewReplacer("://", "_", "/", "_", ":", "_", "?", "_", "#", "_")
	return r.Replace(source)
}
