package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRepoURL(t *testing.T) {
	g := NewGitService()

	valid := []string{
		"https://github.com/acme/widgets",
		"https://gitlab.com/group/project.git",
		"http://git.example.com/owner/repo",
		"https://github.com/acme/widgets/",
	}
	for _, u := range valid {
		assert.NoError(t, g.ValidateRepoURL(u), "expected %q to be accepted", u)
	}

	invalid := []string{
		"",
		"   ",
		"not a url",
		"ftp://github.com/acme/widgets",
		"git@github.com:acme/widgets.git",
		"https://github.com/onlyowner",
		"https:///acme/widgets",
	}
	for _, u := range invalid {
		err := g.ValidateRepoURL(u)
		require.Error(t, err, "expected %q to be rejected", u)
		assert.ErrorIs(t, err, ErrInvalidRepoURL)
	}
}

func TestRepoName(t *testing.T) {
	g := NewGitService()

	assert.Equal(t, "widgets", g.RepoName("https://github.com/acme/widgets"))
	assert.Equal(t, "widgets", g.RepoName("https://github.com/acme/widgets.git"))
	assert.Equal(t, "widgets", g.RepoName("https://github.com/acme/widgets/"))
	assert.Equal(t, "unknown-repo", g.RepoName("https://github.com"))
}

func TestSnapshot_EmptyTreeIsValid(t *testing.T) {
	g := NewGitService()

	snap := g.Snapshot(t.TempDir(), "empty")
	assert.Equal(t, 0, snap.FileCount)
	assert.Empty(t, snap.Files)
	assert.Equal(t, "Unknown", snap.PrimaryLanguage())
}

func TestSnapshot_FilesAreSortedRelativeSlashPaths(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.py":     "pass",
		"a/c.py":   "pass",
		"a/b/d.py": "pass",
	})

	snap := NewGitService().Snapshot(root, "demo")
	assert.Equal(t, []string{"a/b/d.py", "a/c.py", "b.py"}, snap.Files)
}
