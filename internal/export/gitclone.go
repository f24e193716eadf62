package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/promptpack/ghfrag/internal/logger"
)

// gitMetadataDir is the version-control metadata directory purged after
// checkout and skipped during walks.
const gitMetadataDir = ".git"

// Cloner materializes a repository's working tree into dir, without
// version-control metadata.
type Cloner interface {
	Clone(ctx context.Context, cloneURL, dir string) error
}

// GitCloner shells out to git for a shallow, blob-filtered clone of the
// default branch.
type GitCloner struct{}

// Clone clones cloneURL into dir, checks out the working tree, then removes
// the metadata directory. A non-zero exit from either git step yields a
// *CloneError.
func (GitCloner) Clone(ctx context.Context, cloneURL, dir string) error {
	if out, err := runGit(ctx, "", "clone", "--depth=1", "--filter=blob:none", "--no-checkout", cloneURL, dir); err != nil {
		return &CloneError{CloneURL: cloneURL, Output: out, Err: err}
	}

	if out, err := runGit(ctx, dir, "checkout", "HEAD", "--", "."); err != nil {
		return &CloneError{CloneURL: cloneURL, Output: out, Err: err}
	}

	return os.RemoveAll(filepath.Join(dir, gitMetadataDir))
}

// runGit executes git in dir and returns combined stdout+stderr output.
// Pass empty dir to use the current working directory.
func runGit(ctx context.Context, dir string, arg ...string) (string, error) {
	logger.Debug("executing git %s", strings.Join(arg, " "))

	cmd := exec.CommandContext(ctx, "git", arg...)
	if dir != "" {
		cmd.Dir = dir
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("git %s: %w", strings.Join(arg, " "), err)
	}
	return string(out), nil
}
