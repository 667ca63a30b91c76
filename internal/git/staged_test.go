package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

func initRepo(t *testing.T) (string, *gogit.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	return dir, wt
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestStagedFiles(t *testing.T) {
	dir, wt := initRepo(t)
	mustWrite(t, filepath.Join(dir, "staged.env"), "TOKEN=abc\n")
	mustWrite(t, filepath.Join(dir, "sub", "nested.go"), "package sub\n")
	mustWrite(t, filepath.Join(dir, "unstaged.txt"), "not added\n")

	if _, err := wt.Add("staged.env"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := wt.Add("sub/nested.go"); err != nil {
		t.Fatalf("add: %v", err)
	}

	files, err := StagedFiles(dir)
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d staged files, want 2: %v", len(files), files)
	}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("path not absolute: %s", f)
		}
		if strings.HasSuffix(f, "unstaged.txt") {
			t.Errorf("unstaged file reported: %s", f)
		}
	}
}

func TestStagedFilesFromSubdirectory(t *testing.T) {
	dir, wt := initRepo(t)
	mustWrite(t, filepath.Join(dir, "sub", "deep", "creds.yaml"), "key: value\n")
	if _, err := wt.Add("sub/deep/creds.yaml"); err != nil {
		t.Fatalf("add: %v", err)
	}

	files, err := StagedFiles(filepath.Join(dir, "sub", "deep"))
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "creds.yaml") {
		t.Fatalf("got %v, want the one staged file", files)
	}
}

func TestStagedFilesSkipsDeleted(t *testing.T) {
	dir, wt := initRepo(t)
	path := filepath.Join(dir, "gone.txt")
	mustWrite(t, path, "temporary\n")
	if _, err := wt.Add("gone.txt"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	files, err := StagedFiles(dir)
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("got %v, want no files once the blob is gone from disk", files)
	}
}

func TestStagedFilesNotARepo(t *testing.T) {
	if _, err := StagedFiles(t.TempDir()); err == nil {
		t.Fatal("expected an error outside a repository")
	}
}
