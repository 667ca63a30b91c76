package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Collect walks the configured root paths and returns the absolute paths of
// every file eligible for scanning. Missing or unreadable roots are skipped
// silently; collection is a pure filesystem read.
func Collect(cfg Config) []string {
	extSet := extensionSet(cfg.Extensions)
	var out []string
	for _, root := range cfg.Paths {
		abs, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if eligible(abs, cfg, extSet) {
				out = append(out, abs)
			}
			continue
		}
		_ = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			name := d.Name()
			if d.IsDir() {
				if p == abs {
					return nil
				}
				if strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				// Pruning here is a correctness requirement, not only a
				// speedup: descendants of an ignored directory must never
				// be visited.
				if matchAnyGlob(relToWork(p, cfg.WorkDir), cfg.IgnoreGlobs) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return nil
			}
			if eligible(p, cfg, extSet) {
				out = append(out, p)
			}
			return nil
		})
	}
	return out
}

// eligible applies the ignore globs and the extension allow-list to one
// path. Extensionless files match on their lowercase base name, which covers
// Dockerfile, Makefile and friends.
func eligible(path string, cfg Config, extSet map[string]bool) bool {
	rel := relToWork(path, cfg.WorkDir)
	if matchAnyGlob(rel, cfg.IgnoreGlobs) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" {
		return extSet[ext] || extSet[strings.TrimPrefix(ext, ".")]
	}
	return extSet[strings.ToLower(filepath.Base(path))]
}

// relToWork rewrites path relative to the working directory with forward
// slashes, the form all glob matching operates on.
func relToWork(path, workDir string) string {
	if workDir != "" {
		if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(path)
}

// matchAnyGlob tests path against each glob with doublestar semantics:
// `**` crosses path separators (including zero segments, so `**/x/**`
// matches `x` itself at any depth), `*` does not, and matches are anchored.
func matchAnyGlob(relPath string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, relPath); ok {
			return true
		}
	}
	return false
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}
	return set
}
