package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpack/ghfrag/internal/fragment"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "ghfrag version dev\n", out.String())
}

func TestWriteFragments_Stdout(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)

	fragments := []fragment.Fragment{
		fragment.New("first\n", "foo/bar/README.md"),
		fragment.New("no trailing newline", "foo/bar/notes.txt"),
	}

	err := writeFragments(rootCmd, fragments)

	require.NoError(t, err)
	want := "---8<--- foo/bar/README.md\n" +
		"first\n" +
		"---8<--- foo/bar/notes.txt\n" +
		"no trailing newline\n"
	assert.Equal(t, want, out.String())
}

func TestFragmentFileName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"foo/bar/README.md", "foo_bar_README.md"},
		{"https://github.com/foo/bar/issues/1", "github.com_foo_bar_issues_1"},
		{"https://api.github.com/repos/foo/bar/pulls/2.diff", "api.github.com_repos_foo_bar_pulls_2.diff"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, fragmentFileName(tt.source))
		})
	}
}
