// Package ghfrag loads content from GitHub as text fragments for prompt
// assembly: repository file trees, issues and pull requests.
//
// Each loader call is self-contained: it constructs its own API client,
// temporary directory and code-excerpt cache, and nothing persists across
// calls. Loaders block until done; pass a context to cancel.
package ghfrag

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/promptpack/ghfrag/internal/coderef"
	"github.com/promptpack/ghfrag/internal/export"
	"github.com/promptpack/ghfrag/internal/fragment"
	"github.com/promptpack/ghfrag/internal/githubapi"
	"github.com/promptpack/ghfrag/internal/reference"
	"github.com/promptpack/ghfrag/internal/render"
)

// Fragment is an immutable (content, source identifier) pair, the only
// artifact this module hands to its host.
type Fragment = fragment.Fragment

// apiClient is the GitHub surface a load needs: issue and diff retrieval
// plus the text fetching the code-reference expander rides on.
type apiClient interface {
	coderef.Fetcher
	FetchIssue(ctx context.Context, ref *reference.Reference, number int) (*gh.Issue, []*gh.IssueComment, error)
	FetchDiff(ctx context.Context, ref *reference.Reference, number int) (string, error)
}

// Loader fetches repository, issue and pull request fragments. The token
// may be empty for unauthenticated access.
type Loader struct {
	token     string
	cloner    export.Cloner
	newClient func(ctx context.Context, token string) apiClient
}

// Option configures a Loader.
type Option func(*Loader)

// WithCloner overrides the git clone collaborator used by LoadRepo.
func WithCloner(cloner export.Cloner) Option {
	return func(l *Loader) {
		l.cloner = cloner
	}
}

// New creates a loader with the given access token.
func New(token string, opts ...Option) *Loader {
	l := &Loader{
		token: token,
		newClient: func(ctx context.Context, token string) apiClient {
			return githubapi.NewClient(ctx, token)
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadRepo returns one fragment per text file in the repository's
// default-branch tree. The argument is owner/repo or a full repository URL.
func (l *Loader) LoadRepo(ctx context.Context, arg string) ([]Fragment, error) {
	return export.New(l.cloner).Export(ctx, arg)
}

// LoadIssues fetches one or more issues with their comments, rendered as
// Markdown with code-reference links expanded. The argument is
// owner/repo/N[,N...] or a full issue/pull URL.
func (l *Loader) LoadIssues(ctx context.Context, arg string) ([]Fragment, error) {
	return l.load(ctx, arg, reference.KindIssue)
}

// LoadPulls is LoadIssues for pull requests: each number yields the
// rendered Markdown fragment plus a second fragment holding the unified
// diff.
func (l *Loader) LoadPulls(ctx context.Context, arg string) ([]Fragment, error) {
	return l.load(ctx, arg, reference.KindPull)
}

func (l *Loader) load(ctx context.Context, arg string, kind reference.Kind) ([]Fragment, error) {
	ref, err := reference.Parse(arg, kind)
	if err != nil {
		return nil, err
	}

	client := l.newClient(ctx, l.token)
	expander := coderef.New(client)

	var fragments []Fragment
	for _, number := range ref.Numbers {
		issue, comments, err := client.FetchIssue(ctx, ref, number)
		if err != nil {
			return nil, err
		}

		markdown := expander.Expand(ctx, render.IssueMarkdown(issue, comments))
		fragments = append(fragments, fragment.New(markdown, ref.HTMLURL(number)))

		if ref.Kind == reference.KindPull {
			diff, err := client.FetchDiff(ctx, ref, number)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, fragment.New(diff, ref.DiffURL(number)))
		}
	}

	return fragments, nil
}
