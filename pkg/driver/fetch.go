package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
)

// FetchGitSource makes the revision named by target available under
// <cacheDir>/src/<name>/<version> and returns that directory along with the
// resolved commit. Checkouts pinned by rev are reused without touching the
// network; tags and branches are re-resolved on every call.
func FetchGitSource(ctx context.Context, cacheDir, name string, target *TargetSpec) (string, string, error) {
	if !target.IsGit() {
		return "", "", fmt.Errorf("target %q: git URL required", name)
	}
	if cacheDir == "" {
		return "", "", fmt.Errorf("target %q: cache directory required", name)
	}
	revision, descriptor, err := gitRevisionFromTarget(target)
	if err != nil {
		return "", "", errors.Wrapf(err, "fetch target %q", name)
	}

	baseDir := filepath.Join(cacheDir, "src", sanitizePathSegment(name))
	if target.Rev != "" {
		pinned := filepath.Join(baseDir, sanitizePathSegment(target.Rev))
		if dirExists(pinned) {
			return pinned, target.Rev, nil
		}
	}

	co := &checkout{url: target.Git, revision: revision}
	defer co.discard()
	if err := co.stage(ctx, baseDir); err != nil {
		return "", "", errors.Wrapf(err, "fetch target %q", name)
	}

	commit := co.hash.String()
	dir := filepath.Join(baseDir, sanitizePathSegment(gitPinnedVersion(descriptor, commit)))
	if !dirExists(dir) {
		if err := co.promote(dir); err != nil {
			return "", "", errors.Wrapf(err, "fetch target %q", name)
		}
	}
	return dir, commit, nil
}

// checkout is a clone staged in a scratch directory next to its final
// location, so a failed fetch never leaves a half-written version behind.
type checkout struct {
	url      string
	revision plumbing.Revision

	staging string
	hash    plumbing.Hash
}

func (co *checkout) stage(ctx context.Context, baseDir string) error {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}
	staging, err := os.MkdirTemp(baseDir, ".staging-")
	if err != nil {
		return err
	}
	co.staging = staging

	repo, err := git.PlainCloneContext(ctx, staging, false, &git.CloneOptions{URL: co.url, NoCheckout: true})
	if err != nil {
		return fmt.Errorf("git clone %s: %w", co.url, err)
	}
	hash, err := repo.ResolveRevision(co.revision)
	if err != nil {
		return fmt.Errorf("resolve revision %s: %w", co.revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return fmt.Errorf("git checkout %s: %w", co.revision, err)
	}
	co.hash = *hash
	return nil
}

func (co *checkout) promote(dir string) error {
	if err := os.Rename(co.staging, dir); err != nil {
		return err
	}
	co.staging = ""
	return nil
}

// discard removes the staging directory unless promote consumed it.
func (co *checkout) discard() {
	if co.staging != "" {
		_ = os.RemoveAll(co.staging)
		co.staging = ""
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func gitPinnedVersion(descriptor, commit string) string {
	if commit == "" {
		return descriptor
	}
	if descriptor == "" || descriptor == commit {
		return commit
	}
	return descriptor + "@" + commit
}

func gitRevisionFromTarget(target *TargetSpec) (plumbing.Revision, string, error) {
	switch {
	case target.Rev != "":
		return plumbing.Revision(target.Rev), target.Rev, nil
	case target.Tag != "":
		return plumbing.Revision("refs/tags/" + target.Tag), target.Tag, nil
	case target.Branch != "":
		return plumbing.Revision("refs/remotes/origin/" + target.Branch), target.Branch, nil
	}
	return "", "", fmt.Errorf("git targets require rev, tag, or branch")
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
