package coderef

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeFetcher serves canned file content keyed by resolved URL and counts
// fetches per URL.
type fakeFetcher struct {
	authenticated bool
	content       map[string]string
	err           error
	calls         map[string]int
}

func newFakeFetcher(authenticated bool) *fakeFetcher {
	return &fakeFetcher{
		authenticated: authenticated,
		content:       make(map[string]string),
		calls:         make(map[string]int),
	}
}

func (f *fakeFetcher) Authenticated() bool {
	return f.authenticated
}

func (f *fakeFetcher) GetText(_ context.Context, url, _ string) (string, error) {
	f.calls[url]++
	if f.err != nil {
		return "", f.err
	}
	content, ok := f.content[url]
	if !ok {
		return "", errors.New("not found")
	}
	return content, nil
}

const rawFileURL = "https://raw.githubusercontent.com/foo/bar/main/file.py"

func TestExpander_Expand(t *testing.T) {
	t.Run("line range becomes fenced block", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\nline2\nline3\n"

		got := New(fetcher).Expand(context.Background(),
			"See https://github.com/foo/bar/blob/main/file.py#L2-L3 for details.")

		assert.Equal(t, "See ```py\nline2\nline3\n``` for details.", got)
		assert.NotContains(t, got, "blob/main/file.py#L2-L3")
	})

	t.Run("end defaults to start", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\nline2\nline3\n"

		got := New(fetcher).Expand(context.Background(),
			"https://github.com/foo/bar/blob/main/file.py#L2")

		assert.Equal(t, "```py\nline2\n```", got)
	})

	t.Run("end clamped to file length", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\nline2\n"

		got := New(fetcher).Expand(context.Background(),
			"https://github.com/foo/bar/blob/main/file.py#L1-L99")

		assert.Equal(t, "```py\nline1\nline2\n```", got)
	})

	t.Run("start beyond file length leaves link", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\n"

		link := "https://github.com/foo/bar/blob/main/file.py#L5-L9"
		got := New(fetcher).Expand(context.Background(), link)

		assert.Equal(t, link, got)
	})

	t.Run("extensionless file gets untagged fence", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content["https://raw.githubusercontent.com/foo/bar/main/Makefile"] = "all:\n\ttrue\n"

		got := New(fetcher).Expand(context.Background(),
			"https://github.com/foo/bar/blob/main/Makefile#L1-L2")

		assert.Equal(t, "```\nall:\n\ttrue\n```", got)
	})

	t.Run("failed fetch leaves link untouched", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.err = errors.New("boom")

		link := "https://github.com/foo/bar/blob/main/file.py#L1"
		got := New(fetcher).Expand(context.Background(), "before "+link+" after")

		assert.Equal(t, "before "+link+" after", got)
	})

	t.Run("empty content leaves link untouched", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = ""

		link := "https://github.com/foo/bar/blob/main/file.py#L1"
		got := New(fetcher).Expand(context.Background(), link)

		assert.Equal(t, link, got)
	})

	t.Run("text without links is unchanged", func(t *testing.T) {
		fetcher := newFakeFetcher(false)

		got := New(fetcher).Expand(context.Background(), "# Title\n\nNo links here.\n")

		assert.Equal(t, "# Title\n\nNo links here.\n", got)
		assert.Empty(t, fetcher.calls)
	})
}

func TestExpander_Memoization(t *testing.T) {
	t.Run("identical URLs fetched once per call", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\nline2\nline3\n"

		markdown := "https://github.com/foo/bar/blob/main/file.py#L1 and " +
			"https://github.com/foo/bar/blob/main/file.py#L3"
		got := New(fetcher).Expand(context.Background(), markdown)

		assert.Equal(t, "```py\nline1\n``` and ```py\nline3\n```", got)
		assert.Equal(t, 1, fetcher.calls[rawFileURL])
	})

	t.Run("failures are memoized too", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.err = errors.New("boom")

		markdown := "https://github.com/foo/bar/blob/main/file.py#L1 " +
			"https://github.com/foo/bar/blob/main/file.py#L2"
		New(fetcher).Expand(context.Background(), markdown)

		assert.Equal(t, 1, fetcher.calls[rawFileURL])
	})

	t.Run("cache does not leak across expanders", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		fetcher.content[rawFileURL] = "line1\n"

		link := "https://github.com/foo/bar/blob/main/file.py#L1"
		New(fetcher).Expand(context.Background(), link)
		New(fetcher).Expand(context.Background(), link)

		assert.Equal(t, 2, fetcher.calls[rawFileURL])
	})
}

func TestExpander_Resolution(t *testing.T) {
	t.Run("authenticated fetch uses contents API", func(t *testing.T) {
		fetcher := newFakeFetcher(true)
		contentsURL := "https://api.github.com/repos/foo/bar/contents/file.py?ref=main"
		fetcher.content[contentsURL] = "line1\n"

		got := New(fetcher).Expand(context.Background(),
			"https://github.com/foo/bar/blob/main/file.py#L1")

		assert.Equal(t, "```py\nline1\n```", got)
		assert.Equal(t, 1, fetcher.calls[contentsURL])
	})

	t.Run("enterprise domain uses raw path convention", func(t *testing.T) {
		fetcher := newFakeFetcher(false)
		rawURL := "https://git.example.org/raw/foo/bar/main/file.py"
		fetcher.content[rawURL] = "line1\n"

		got := New(fetcher).Expand(context.Background(),
			"https://git.example.org/foo/bar/blob/main/file.py#L1")

		assert.Equal(t, "```py\nline1\n```", got)
		assert.Equal(t, 1, fetcher.calls[rawURL])
	})

	t.Run("enterprise domain with token uses api/v3 contents", func(t *testing.T) {
		fetcher := newFakeFetcher(true)
		contentsURL := "https://git.example.org/api/v3/repos/foo/bar/contents/file.py?ref=main"
		fetcher.content[contentsURL] = "line1\n"

		got := New(fetcher).Expand(context.Background(),
			"https://git.example.org/foo/bar/blob/main/file.py#L1")

		assert.Equal(t, "```py\nline1\n```", got)
	})
}
