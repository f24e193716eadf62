// Package render converts fetched issues and pull requests to Markdown.
package render

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v80/github"
)

// IssueMarkdown renders an issue (or pull request, which shares the same
// shape) and its ordered comment list as canonical Markdown: an h1 title, an
// italic author line, the body when present, then a rule-separated comment
// section. Output is trimmed of trailing whitespace and ends with exactly
// one newline.
func IssueMarkdown(issue *gh.Issue, comments []*gh.IssueComment) string {
	var blocks []string

	blocks = append(blocks, fmt.Sprintf("# %s\n", issue.GetTitle()))
	blocks = append(blocks, fmt.Sprintf("*Posted by @%s*\n", issue.GetUser().GetLogin()))
	if body := issue.GetBody(); body != "" {
		blocks = append(blocks, body+"\n")
	}

	if len(comments) > 0 {
		blocks = append(blocks, "---\n")
		for _, comment := range comments {
			blocks = append(blocks, fmt.Sprintf("### Comment by @%s\n", comment.GetUser().GetLogin()))
			if body := comment.GetBody(); body != "" {
				blocks = append(blocks, body+"\n")
			}
			blocks = append(blocks, "---\n")
		}
	}

	return strings.TrimRight(strings.Join(blocks, "\n"), " \t\n") + "\n"
}
