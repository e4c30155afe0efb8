package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCommitFile(t *testing.T) {
	root := initRepo(t)
	dir := filepath.Join(root, "integrations", "hue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	msg := "Set integration_type to 'hub' for hue"
	if err := CommitFile(root, path, msg); err != nil {
		t.Fatalf("CommitFile failed: %v", err)
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		t.Fatal(err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("no HEAD after commit: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if commit.Message != msg {
		t.Errorf("commit message = %q, want %q", commit.Message, msg)
	}

	// Exactly one file in the commit tree
	tree, err := commit.Tree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tree.File("integrations/hue/manifest.json"); err != nil {
		t.Errorf("manifest not in commit tree: %v", err)
	}
}

func TestCommitFileOutsideRepo(t *testing.T) {
	root := initRepo(t)
	outside := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(outside, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CommitFile(root, outside, "msg"); err == nil {
		t.Error("expected failure for a path outside the work tree")
	}
}

func TestCommitFileNoRepository(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CommitFile(dir, path, "msg"); err == nil {
		t.Error("expected failure when no repository is present")
	}
}

func TestIsRepository(t *testing.T) {
	if !IsRepository(initRepo(t)) {
		t.Error("expected repo detection")
	}
	if IsRepository(t.TempDir()) {
		t.Error("plain directory detected as repo")
	}
}
