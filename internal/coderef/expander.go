// Package coderef expands GitHub blob links into fenced code excerpts.
//
// A blob link names a line range of a file at a git ref:
//
//	https://{domain}/{owner}/{repo}/blob/{ref}/{path}#L{start}[-L{end}]
//
// Each match is replaced by a fenced code block holding the referenced
// lines, tagged with the file's extension. Expansion is best-effort: a
// failed or empty fetch leaves the original link in place, and the pass
// never returns an error.
package coderef

import (
	"context"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/promptpack/ghfrag/internal/githubapi"
	"github.com/promptpack/ghfrag/internal/logger"
	"github.com/promptpack/ghfrag/internal/reference"
)

// blobLinkRegex captures domain, owner, repo, ref, path, start and the
// optional end line of a blob link.
var blobLinkRegex = regexp.MustCompile(
	`https?://([^/\s)]+)/([^/\s)]+)/([^/\s)]+)/blob/([^/\s)]+)/([^#\s)]+)#L(\d+)(?:-L(\d+))?`,
)

// Fetcher is the client surface the expander needs. Satisfied by
// *githubapi.Client.
type Fetcher interface {
	Authenticated() bool
	GetText(ctx context.Context, url, accept string) (string, error)
}

// excerpt is a memoized fetch result. failed marks URLs whose fetch did not
// yield usable content, so they are not retried within the same call.
type excerpt struct {
	lines  []string
	failed bool
}

// Expander rewrites blob links in one rendering call. The memoization cache
// is scoped to the Expander; construct a new one per call.
type Expander struct {
	fetcher Fetcher
	cache   map[string]excerpt
}

// New creates an expander around a fetcher.
func New(fetcher Fetcher) *Expander {
	return &Expander{
		fetcher: fetcher,
		cache:   make(map[string]excerpt),
	}
}

// Expand replaces every blob line-range link in markdown with a fenced code
// block containing lines start..end (1-indexed, inclusive). The end line
// defaults to start and is clamped to the file's length.
func (e *Expander) Expand(ctx context.Context, markdown string) string {
	return blobLinkRegex.ReplaceAllStringFunc(markdown, func(link string) string {
		m := blobLinkRegex.FindStringSubmatch(link)
		domain, owner, repo, gitRef, filePath := m[1], m[2], m[3], m[4], m[5]

		start, _ := strconv.Atoi(m[6])
		end := start
		if m[7] != "" {
			end, _ = strconv.Atoi(m[7])
		}

		lines, ok := e.fetchLines(ctx, domain, owner, repo, gitRef, filePath)
		if !ok {
			return link
		}

		if end > len(lines) {
			end = len(lines)
		}
		if start < 1 || start > end {
			return link
		}

		lang := strings.TrimPrefix(path.Ext(filePath), ".")
		return "```" + lang + "\n" + strings.Join(lines[start-1:end], "\n") + "\n```"
	})
}

// fetchLines resolves a blob link to the file's line-split content. The
// contents API is used when a token is configured; otherwise the
// raw-content host. Each distinct URL is fetched at most once per expander.
func (e *Expander) fetchLines(ctx context.Context, domain, owner, repo, gitRef, filePath string) ([]string, bool) {
	var url string
	if e.fetcher.Authenticated() {
		url = reference.ContentsAPIURL(domain, owner, repo, filePath, gitRef)
	} else {
		url = reference.RawContentURL(domain, owner, repo, gitRef, filePath)
	}

	if cached, ok := e.cache[url]; ok {
		return cached.lines, !cached.failed
	}

	content, err := e.fetcher.GetText(ctx, url, githubapi.MediaTypeRaw)
	if err != nil || content == "" {
		if err != nil {
			logger.Debug("code reference fetch failed for %s: %v", url, err)
		}
		e.cache[url] = excerpt{failed: true}
		return nil, false
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	e.cache[url] = excerpt{lines: lines}
	return lines, true
}
