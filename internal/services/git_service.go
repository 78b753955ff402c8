package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"

	"readmegen/internal/events"
	"readmegen/internal/models"
)

// ErrInvalidRepoURL marks a malformed repository reference. Callers branch
// on it to distinguish bad input from retrieval failures.
var ErrInvalidRepoURL = errors.New("invalid repository URL")

// GitService is the repository provider: it turns a repository URL into a
// disposable local checkout and builds the read-only snapshot over it.
type GitService struct{}

func NewGitService() *GitService {
	return &GitService{}
}

// ValidateRepoURL rejects references that cannot be a public repository URL.
func (g *GitService) ValidateRepoURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("%w: repository URL is required", ErrInvalidRepoURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRepoURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidRepoURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: no host", ErrInvalidRepoURL)
	}
	if len(strings.Split(strings.Trim(u.Path, "/"), "/")) < 2 {
		return fmt.Errorf("%w: must name an owner and a repository", ErrInvalidRepoURL)
	}
	return nil
}

// RepoName extracts the repository name from a URL.
func (g *GitService) RepoName(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "unknown-repo"
	}
	name := strings.TrimSuffix(filepath.Base(strings.TrimRight(u.Path, "/")), ".git")
	if name == "" || name == "." || name == "/" {
		return "unknown-repo"
	}
	return name
}

// CloneTemp shallow-clones the repository into a fresh temp directory.
// The returned cleanup removes the checkout and is safe to call on every
// exit path, including after a failed clone.
func (g *GitService) CloneTemp(ctx context.Context, repoURL string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "readmegen_repo_")
	if err != nil {
		return "", func() {}, fmt.Errorf("create checkout dir: %w", err)
	}
	cleanup := func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			events.Emit(ctx, events.NewWarn(events.StageClone, "checkout cleanup failed: "+rmErr.Error()))
		}
	}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          repoURL,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("clone %s: %w", repoURL, err)
	}
	return dir, cleanup, nil
}

// Snapshot walks the checkout once and builds the immutable per-request
// view. An empty or unreadable tree yields an empty snapshot, not an error;
// downstream stages treat that as a valid degenerate input.
func (g *GitService) Snapshot(root, name string) *models.RepositorySnapshot {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(files)

	return &models.RepositorySnapshot{
		Root:      root,
		Name:      name,
		Files:     files,
		FileCount: len(files),
		Languages: detectLanguages(files),
	}
}
