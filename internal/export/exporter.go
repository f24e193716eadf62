// Package export turns a repository's default-branch tree into fragments,
// one per text file. Cloning is delegated to a Cloner collaborator; the
// exporter owns the temporary directory, the tree walk and text detection.
package export

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/promptpack/ghfrag/internal/fragment"
	"github.com/promptpack/ghfrag/internal/logger"
)

// ErrExportFailed indicates an unexpected failure while walking the cloned
// tree. Clone failures are reported as *CloneError instead.
var ErrExportFailed = errors.New("export: repository walk failed")

// CloneError reports a non-zero exit from the clone or checkout step.
type CloneError struct {
	CloneURL string
	Output   string
	Err      error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("export: failed to clone %s: %s", e.CloneURL, strings.TrimSpace(e.Output))
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// Exporter emits one fragment per decodable text file of a repository.
type Exporter struct {
	cloner Cloner
}

// New creates an exporter. A nil cloner defaults to git.
func New(cloner Cloner) *Exporter {
	if cloner == nil {
		cloner = GitCloner{}
	}
	return &Exporter{cloner: cloner}
}

// CloneURL normalizes a repository argument into a clone URL: bare
// owner/repo maps to the public host, and a .git suffix is appended when
// missing.
func CloneURL(arg string) string {
	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		return fmt.Sprintf("https://github.com/%s.git", arg)
	}
	if !strings.HasSuffix(arg, ".git") {
		return arg + ".git"
	}
	return arg
}

// Export clones the repository named by arg into a scoped temporary
// directory and returns one fragment per UTF-8 decodable file, in lexical
// walk order. Fragment sources are {arg}/{path relative to the repo root}.
// The temporary directory is removed unconditionally, including on error.
func (e *Exporter) Export(ctx context.Context, arg string) ([]fragment.Fragment, error) {
	cloneURL := CloneURL(arg)

	dir := filepath.Join(os.TempDir(), "ghfrag-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	defer os.RemoveAll(dir)

	logger.Info("cloning %s", cloneURL)
	if err := e.cloner.Clone(ctx, cloneURL, dir); err != nil {
		return nil, err
	}

	var fragments []fragment.Fragment
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == gitMetadataDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		if !utf8.Valid(data) {
			// Binary files are not fragmented.
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		fragments = append(fragments, fragment.New(string(data), arg+"/"+filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	logger.Info("exported %d fragments from %s", len(fragments), arg)
	return fragments, nil
}
