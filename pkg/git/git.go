package git

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	errUtils "github.com/oste/expo-cli/errors"
	log "github.com/oste/expo-cli/pkg/logger"
)

// OpenRepo opens a Git repository at the given path, handling both regular
// repositories and worktrees correctly. It first tries to open with
// DetectDotGit: false for exact path matching, then falls back to
// worktree-aware options if needed.
func OpenRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          false,
		EnableDotGitCommonDir: false,
	})
	if err == nil {
		return repo, nil
	}

	// Check if there's a .git file (worktree) at the path.
	gitPath := filepath.Join(path, ".git")
	info, statErr := os.Stat(gitPath)

	if statErr == nil && !info.IsDir() {
		// For worktrees, go-git has issues with config reading.
		// EnableDotGitCommonDir helps with worktree support.
		repo, worktreeErr := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
			DetectDotGit:          true,
			EnableDotGitCommonDir: true,
		})
		if worktreeErr == nil {
			return repo, nil
		}

		repo, basicErr := git.PlainOpen(path)
		if basicErr == nil {
			return repo, nil
		}
	}

	// Fall back to detecting a .git directory in a parent.
	repo, detectErr := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: false,
	})
	if detectErr == nil {
		return repo, nil
	}

	// Return the original error.
	return nil, err
}

// IsRepo reports whether the given path is inside a Git repository.
func IsRepo(path string) bool {
	_, err := OpenRepo(path)
	return err == nil
}

// StageFile stages a single file so that brand-new files become tracked
// without forcing an immediate commit.
func StageFile(dir string, path string) error {
	repo, err := OpenRepo(dir)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(worktree.Filesystem.Root(), path)
	if err != nil {
		return err
	}

	if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
		return err
	}

	log.Debug("Staged file", "path", rel)
	return nil
}

// EnsureCleanWorkingTree returns ErrDirtyWorkingTree when the repository at
// dir has uncommitted changes.
func EnsureCleanWorkingTree(dir string) error {
	repo, err := OpenRepo(dir)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	status, err := worktree.Status()
	if err != nil {
		return err
	}

	if !status.IsClean() {
		return errUtils.Build(errUtils.ErrDirtyWorkingTree).
			WithContext("dir", dir).
			WithHint("Review the changes and commit them, or run with --non-interactive to fail fast").
			Err()
	}

	return nil
}

// CommitAll stages every change in the worktree and commits it with the
// given message. When the repository has no user configured, a neutral
// fallback author is used so the commit does not fail on fresh clones.
func CommitAll(dir string, message string) error {
	repo, err := OpenRepo(dir)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return err
	}

	commitOpts := &git.CommitOptions{}
	if name, email, ok := configuredUser(repo); ok {
		commitOpts.Author = &object.Signature{Name: name, Email: email, When: time.Now()}
	} else {
		commitOpts.Author = &object.Signature{Name: "expo-cli", Email: "expo-cli@localhost", When: time.Now()}
	}

	hash, err := worktree.Commit(message, commitOpts)
	if err != nil {
		return err
	}

	log.Debug("Committed changes", "hash", hash.String(), "message", message)
	return nil
}

func configuredUser(repo *git.Repository) (name, email string, ok bool) {
	cfg, err := repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return "", "", false
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return "", "", false
	}
	return cfg.User.Name, cfg.User.Email, true
}
