package engine

// DefaultExtensions returns the built-in set of scannable file extensions
// and bare filenames. A fresh slice is returned so callers can modify their
// copy without touching shared state.
func DefaultExtensions() []string {
	return []string{
		".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".rb", ".php",
		".cs", ".cpp", ".cc", ".c", ".h", ".hpp", ".swift", ".kt", ".scala",
		".rs", ".sh", ".bash", ".zsh", ".pl", ".r", ".lua",
		".yaml", ".yml", ".json", ".xml", ".toml", ".ini", ".cfg", ".conf",
		".properties", ".env", ".tf", ".tfvars", ".sql", ".gradle",
		".md", ".txt", ".html", ".vue", ".svelte", ".pem", ".key",
		"dockerfile", "makefile", "jenkinsfile", "vagrantfile", "procfile",
	}
}

// DefaultIgnoreGlobs returns the built-in ignore globs. User-configured
// globs are unioned with, never replace, this set.
func DefaultIgnoreGlobs() []string {
	return []string{
		"**/node_modules/**",
		"**/vendor/**",
		"**/dist/**",
		"**/build/**",
		"**/target/**",
		"**/__pycache__/**",
		"**/venv/**",
		"**/coverage/**",
		"**/*.min.js",
		"**/*.lock",
		"**/package-lock.json",
	}
}
