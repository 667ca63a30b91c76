// Package config loads keygrep configuration from local and global YAML or
// JSON files with precedence rules, and resolves it into engine
// configuration. It is internal; CLI code maps flags and files into the
// engine.
package config
