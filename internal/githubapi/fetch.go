package githubapi

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	gh "github.com/google/go-github/v80/github"

	"github.com/promptpack/ghfrag/internal/reference"
)

// FetchIssue retrieves one issue or pull request plus its ordered comment
// list. Pull references resolve through the pulls endpoint family; the
// response shape is compatible with the issue type either way.
func (c *Client) FetchIssue(
	ctx context.Context, ref *reference.Reference, number int,
) (*gh.Issue, []*gh.IssueComment, error) {
	var issue gh.Issue
	if err := c.GetJSON(ctx, ref.APIURL(number), &issue); err != nil {
		return nil, nil, err
	}

	comments, err := c.FetchComments(ctx, ref.CommentsURL(number))
	if err != nil {
		return nil, nil, err
	}

	return &issue, comments, nil
}

// FetchComments retrieves every page of a comments endpoint.
func (c *Client) FetchComments(ctx context.Context, url string) ([]*gh.IssueComment, error) {
	items, err := c.GetAllPages(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]*gh.IssueComment, 0, len(items))
	for _, item := range items {
		var comment gh.IssueComment
		if err := json.Unmarshal(item, &comment); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	return comments, nil
}

// FetchDiff retrieves the unified diff of a pull request.
func (c *Client) FetchDiff(ctx context.Context, ref *reference.Reference, number int) (string, error) {
	return c.GetText(ctx, ref.DiffURL(number), MediaTypeDiff)
}
