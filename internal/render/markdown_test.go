package render

import (
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
)

func issueFixture(title, author, body string) *gh.Issue {
	issue := &gh.Issue{
		Title: gh.Ptr(title),
		User:  &gh.User{Login: gh.Ptr(author)},
	}
	if body != "" {
		issue.Body = gh.Ptr(body)
	}
	return issue
}

func commentFixture(author, body string) *gh.IssueComment {
	return &gh.IssueComment{
		User: &gh.User{Login: gh.Ptr(author)},
		Body: gh.Ptr(body),
	}
}

func TestIssueMarkdown(t *testing.T) {
	t.Run("issue with body and two comments", func(t *testing.T) {
		issue := issueFixture("Example issue", "simonw", "Has a description.")
		comments := []*gh.IssueComment{
			commentFixture("simonw", "Comment 1."),
			commentFixture("simonw", "Comment 2."),
		}

		got := IssueMarkdown(issue, comments)

		want := "# Example issue\n\n" +
			"*Posted by @simonw*\n\n" +
			"Has a description.\n\n" +
			"---\n\n" +
			"### Comment by @simonw\n\n" +
			"Comment 1.\n\n" +
			"---\n\n" +
			"### Comment by @simonw\n\n" +
			"Comment 2.\n\n" +
			"---\n"
		assert.Equal(t, want, got)
	})

	t.Run("issue without body", func(t *testing.T) {
		issue := issueFixture("No description", "alice", "")

		got := IssueMarkdown(issue, nil)

		assert.Equal(t, "# No description\n\n*Posted by @alice*\n", got)
	})

	t.Run("issue without comments ends after body", func(t *testing.T) {
		issue := issueFixture("Just a body", "alice", "Details here.")

		got := IssueMarkdown(issue, nil)

		assert.Equal(t, "# Just a body\n\n*Posted by @alice*\n\nDetails here.\n", got)
		assert.NotContains(t, got, "---")
	})

	t.Run("comment without body keeps its header", func(t *testing.T) {
		issue := issueFixture("Title", "alice", "Body.")
		comments := []*gh.IssueComment{
			{User: &gh.User{Login: gh.Ptr("bob")}},
		}

		got := IssueMarkdown(issue, comments)

		assert.Contains(t, got, "### Comment by @bob\n")
		assert.Equal(t, byte('\n'), got[len(got)-1])
		assert.NotEqual(t, "\n\n", got[len(got)-2:])
	})
}
