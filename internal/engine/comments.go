package engine

import (
	"path/filepath"
	"strings"
)

// commentPrefixes maps a lowercase extension (or bare filename for
// extensionless files) to the line prefixes treated as comments. Unknown
// extensions are never treated as comments.
var commentPrefixes = map[string][]string{
	// C family
	".go": {"//", "/*", "*"}, ".c": {"//", "/*", "*"}, ".h": {"//", "/*", "*"},
	".cpp": {"//", "/*", "*"}, ".hpp": {"//", "/*", "*"}, ".cc": {"//", "/*", "*"},
	".java": {"//", "/*", "*"}, ".js": {"//", "/*", "*"}, ".jsx": {"//", "/*", "*"},
	".ts": {"//", "/*", "*"}, ".tsx": {"//", "/*", "*"}, ".cs": {"//", "/*", "*"},
	".swift": {"//", "/*", "*"}, ".kt": {"//", "/*", "*"}, ".scala": {"//", "/*", "*"},
	".rs": {"//", "/*", "*"}, ".gradle": {"//", "/*", "*"},
	".php": {"//", "/*", "*", "#"},

	// Scripts and config
	".py": {"#"}, ".rb": {"#"}, ".sh": {"#"}, ".bash": {"#"}, ".zsh": {"#"},
	".pl": {"#"}, ".r": {"#"}, ".yaml": {"#"}, ".yml": {"#"}, ".toml": {"#"},
	".cfg": {"#"}, ".conf": {"#"}, ".env": {"#"}, ".tf": {"#"}, ".tfvars": {"#"},
	".properties": {"#", "!"}, ".ini": {";", "#"},
	"dockerfile": {"#"}, "makefile": {"#"}, "jenkinsfile": {"//"},

	// Markup
	".html": {"<!--"}, ".xml": {"<!--"}, ".md": {"<!--"},
	".vue": {"<!--"}, ".svelte": {"<!--"},

	// SQL / Lua
	".sql": {"--"}, ".lua": {"--"},
}

// isCommentLine reports whether the trimmed line is a comment for the file's
// language, looked up by extension or, for extensionless files, by name.
func isCommentLine(path, trimmed string) bool {
	key := strings.ToLower(filepath.Ext(path))
	if key == "" {
		key = strings.ToLower(filepath.Base(path))
	}
	for _, p := range commentPrefixes[key] {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
