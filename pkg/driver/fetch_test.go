package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func initGitRepo(t *testing.T, dir string) (*git.Repository, string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commit := commitAll(t, repo, dir, "init")
	return repo, commit
}

func commitAll(t *testing.T, repo *git.Repository, dir, message string) string {
	t.Helper()
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	})
	require.NoError(t, err)
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "wordlang",
			Email: "wordlang@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestFetchGitSourceByRev(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repoDir, "hello.wl"), "Show the value of 42.")
	_, rev := initGitRepo(t, repoDir)

	cache := filepath.Join(root, "cache")
	target := &TargetSpec{Name: "hello", Main: "hello.wl", Git: repoDir, Rev: rev}
	dir, commit, err := FetchGitSource(context.Background(), cache, "hello", target)
	require.NoError(t, err)
	require.Equal(t, rev, commit)
	require.Equal(t, filepath.Join(cache, "src", "hello", rev), dir)

	data, err := os.ReadFile(filepath.Join(dir, "hello.wl"))
	require.NoError(t, err)
	require.Equal(t, "Show the value of 42.", string(data))

	// A pinned rev already in the cache is reused even if the remote is gone.
	require.NoError(t, os.RemoveAll(repoDir))
	again, commit, err := FetchGitSource(context.Background(), cache, "hello", target)
	require.NoError(t, err)
	require.Equal(t, dir, again)
	require.Equal(t, rev, commit)
}

func TestFetchGitSourceByTagAndBranch(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repoDir, "hello.wl"), "Show the value of 1.")
	repo, first := initGitRepo(t, repoDir)
	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v1", head.Hash(), nil)
	require.NoError(t, err)
	branch := head.Name().Short()

	writeFile(t, filepath.Join(repoDir, "hello.wl"), "Show the value of 2.")
	second := commitAll(t, repo, repoDir, "second")

	cache := filepath.Join(root, "cache")
	tagged := &TargetSpec{Name: "tagged", Main: "hello.wl", Git: repoDir, Tag: "v1"}
	dir, commit, err := FetchGitSource(context.Background(), cache, "tagged", tagged)
	require.NoError(t, err)
	require.Equal(t, first, commit)
	require.Equal(t, filepath.Join(cache, "src", "tagged", "v1_"+first), dir)
	data, err := os.ReadFile(filepath.Join(dir, "hello.wl"))
	require.NoError(t, err)
	require.Equal(t, "Show the value of 1.", string(data))

	tracking := &TargetSpec{Name: "tracking", Main: "hello.wl", Git: repoDir, Branch: branch}
	dir, commit, err = FetchGitSource(context.Background(), cache, "tracking", tracking)
	require.NoError(t, err)
	require.Equal(t, second, commit)
	data, err = os.ReadFile(filepath.Join(dir, "hello.wl"))
	require.NoError(t, err)
	require.Equal(t, "Show the value of 2.", string(data))
}

func TestFetchGitSourceErrors(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repoDir, "hello.wl"), "Show the value of 1.")
	initGitRepo(t, repoDir)
	cache := filepath.Join(root, "cache")

	_, _, err := FetchGitSource(context.Background(), cache, "local", &TargetSpec{Main: "hello.wl"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "git URL required")

	_, _, err = FetchGitSource(context.Background(), cache, "missing", &TargetSpec{Main: "hello.wl", Git: repoDir, Tag: "nope"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `fetch target "missing"`)
	require.Contains(t, err.Error(), "resolve revision refs/tags/nope")

	entries, err := os.ReadDir(filepath.Join(cache, "src", "missing"))
	require.NoError(t, err)
	require.Empty(t, entries, "a failed fetch must not leave a staging clone behind")

	_, _, err = FetchGitSource(context.Background(), cache, "nowhere", &TargetSpec{Main: "hello.wl", Git: filepath.Join(root, "absent"), Rev: "abc"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "git clone")
	entries, err = os.ReadDir(filepath.Join(cache, "src", "nowhere"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFetchGitSourceRefetchKeepsExistingVersion(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "repo")
	writeFile(t, filepath.Join(repoDir, "hello.wl"), "Show the value of 3.")
	repo, first := initGitRepo(t, repoDir)
	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("stable", head.Hash(), nil)
	require.NoError(t, err)

	cache := filepath.Join(root, "cache")
	target := &TargetSpec{Name: "pinned", Main: "hello.wl", Git: repoDir, Tag: "stable"}
	dir, commit, err := FetchGitSource(context.Background(), cache, "pinned", target)
	require.NoError(t, err)
	require.Equal(t, first, commit)

	again, commit, err := FetchGitSource(context.Background(), cache, "pinned", target)
	require.NoError(t, err)
	require.Equal(t, dir, again)
	require.Equal(t, first, commit)

	entries, err := os.ReadDir(filepath.Join(cache, "src", "pinned"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "stable_"+first, entries[0].Name())
}

func TestResolveHome(t *testing.T) {
	override := t.TempDir()
	t.Setenv(HomeEnv, override)
	home, err := ResolveHome()
	require.NoError(t, err)
	require.Equal(t, override, home)

	user := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("HOME", user)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home, err = ResolveHome()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(user, ".wordlang"), home)
}

func TestSanitizePathSegment(t *testing.T) {
	require.Equal(t, "head", sanitizePathSegment("  "))
	require.Equal(t, "feature_x", sanitizePathSegment("feature/x"))
	require.Equal(t, "v1.2.3", sanitizePathSegment("v1.2.3"))
}
