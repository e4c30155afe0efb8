// Package gitrepo records manifest updates as individual commits. It prefers
// go-git and falls back to the git CLI when the repo cannot be opened in-process.
package gitrepo

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitFile stages exactly one file and creates a commit with the given
// message. The commit is a black box to callers: success or an error.
func CommitFile(root, path, message string) error {
	if err := commitGoGit(root, path, message); err == nil {
		return nil
	}

	// CLI fallback
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git not available and repository could not be opened at %s", root)
	}
	return commitCLI(root, path, message)
}

// IsRepository reports whether root is inside a git work tree.
func IsRepository(root string) bool {
	if _, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		return true
	}
	if _, err := exec.LookPath("git"); err != nil {
		return false
	}
	out := runGit(root, "rev-parse", "--is-inside-work-tree")
	return strings.TrimSpace(out) == "true"
}

func commitGoGit(root, path, message string) error {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return err
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") {
		return fmt.Errorf("path %s is outside the repository work tree", path)
	}

	if _, err := wt.Add(rel); err != nil {
		return fmt.Errorf("stage %s: %w", rel, err)
	}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: signature(repo)}); err != nil {
		return fmt.Errorf("commit %s: %w", rel, err)
	}
	return nil
}

// signature resolves the author from git config, with a tool identity as the
// fallback so commits work in bare environments.
func signature(repo *git.Repository) *object.Signature {
	name, email := "manifestneat", "manifestneat@localhost"
	if cfg, err := repo.ConfigScoped(gitconfig.SystemScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

func commitCLI(root, path, message string) error {
	if out, err := runGitErr(root, "add", path); err != nil {
		return fmt.Errorf("stage %s: %v: %s", path, err, strings.TrimSpace(out))
	}
	if out, err := runGitErr(root, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit %s: %v: %s", path, err, strings.TrimSpace(out))
	}
	return nil
}

func runGit(dir string, args ...string) string {
	out, _ := runGitErr(dir, args...)
	return out
}

func runGitErr(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
