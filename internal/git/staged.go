// Package git resolves repository state for scan targeting.
package git

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// StagedFiles returns the paths of files staged for commit in the repository
// containing root, relative to the repository root. Deleted entries are
// skipped since there is nothing on disk to scan.
func StagedFiles(root string) ([]string, error) {
	repo, err := gogit.PlainOpenWithOptions(root, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}

	var files []string
	for path, st := range status {
		switch st.Staging {
		case gogit.Added, gogit.Modified, gogit.Renamed, gogit.Copied:
		default:
			continue
		}
		abs := filepath.Join(wt.Filesystem.Root(), filepath.FromSlash(path))
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		files = append(files, abs)
	}
	sort.Strings(files)
	return files, nil
}
