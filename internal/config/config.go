package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keygrep/keygrep/internal/engine"
	"github.com/keygrep/keygrep/internal/rules"
	"github.com/keygrep/keygrep/internal/types"
)

// FileConfig is the on-disk configuration shape, accepted as YAML or JSON.
// Optional scalars are pointers so that "unset" and "explicitly false/zero"
// stay distinguishable through config merging.
type FileConfig struct {
	Paths            []string               `yaml:"paths,omitempty" json:"paths,omitempty"`
	IgnorePaths      []string               `yaml:"ignorePaths,omitempty" json:"ignorePaths,omitempty"`
	DisabledRules    []string               `yaml:"disabledRules,omitempty" json:"disabledRules,omitempty"`
	MinSeverity      *string                `yaml:"minSeverity,omitempty" json:"minSeverity,omitempty"`
	EnableEntropy    *bool                  `yaml:"enableEntropy,omitempty" json:"enableEntropy,omitempty"`
	EntropyThreshold *float64               `yaml:"entropyThreshold,omitempty" json:"entropyThreshold,omitempty"`
	MaxFileSize      *int64                 `yaml:"maxFileSize,omitempty" json:"maxFileSize,omitempty"`
	Extensions       []string               `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	Allowlist        []types.AllowlistEntry `yaml:"allowlist,omitempty" json:"allowlist,omitempty"`
	CustomRules      []rules.CustomRule     `yaml:"customRules,omitempty" json:"customRules,omitempty"`
}

// Load reads a config file. JSON is used for .json paths, YAML otherwise.
// Any read or parse failure is returned to the caller; an explicitly
// requested config that fails to load is fatal to the invocation.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file, starting at root and
// walking up parent directories so scans started in a subdirectory still
// pick up the repository's config. The nearest file wins.
func LoadLocal(root string) (FileConfig, string, error) {
	dir := root
	for {
		for _, name := range []string{".keygrep.yml", ".keygrep.yaml", ".keygrep.json", "keygrep.yml", "keygrep.yaml"} {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				cfg, err := Load(p)
				return cfg, p, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return FileConfig{}, "", errors.New("no local config")
		}
		dir = parent
	}
}

// LoadGlobal loads the user-wide config from the XDG config dir or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return FileConfig{}, errors.New("no config dir")
		}
		base = filepath.Join(home, ".config")
	}
	p := filepath.Join(base, "keygrep", "config.yml")
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, errors.New("no global config")
	}
	return Load(p)
}

// Merge overlays over onto base: set fields in over win, unset fields fall
// through. Slices are treated as set when non-nil.
func Merge(base, over FileConfig) FileConfig {
	out := base
	if over.Paths != nil {
		out.Paths = over.Paths
	}
	if over.IgnorePaths != nil {
		out.IgnorePaths = over.IgnorePaths
	}
	if over.DisabledRules != nil {
		out.DisabledRules = over.DisabledRules
	}
	if over.MinSeverity != nil {
		out.MinSeverity = over.MinSeverity
	}
	if over.EnableEntropy != nil {
		out.EnableEntropy = over.EnableEntropy
	}
	if over.EntropyThreshold != nil {
		out.EntropyThreshold = over.EntropyThreshold
	}
	if over.MaxFileSize != nil {
		out.MaxFileSize = over.MaxFileSize
	}
	if over.Extensions != nil {
		out.Extensions = over.Extensions
	}
	if over.Allowlist != nil {
		out.Allowlist = over.Allowlist
	}
	if over.CustomRules != nil {
		out.CustomRules = over.CustomRules
	}
	return out
}

// AppendAllowlist adds an entry to the repo-local config, creating
// .keygrep.yml when none exists yet.
func AppendAllowlist(root string, entry types.AllowlistEntry) (string, error) {
	cfg, path, err := LoadLocal(root)
	if err != nil {
		cfg, path = FileConfig{}, filepath.Join(root, ".keygrep.yml")
	}
	for _, e := range cfg.Allowlist {
		if e.Fingerprint != "" && e.Fingerprint == entry.Fingerprint {
			return path, nil
		}
	}
	cfg.Allowlist = append(cfg.Allowlist, entry)
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return path, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return path, fmt.Errorf("write config %s: %w", path, err)
	}
	return path, nil
}

// ToEngine resolves the file configuration into an engine.Config, applying
// defaults: paths ["."], minimum severity low, entropy on at threshold 4.5,
// 1 MB size gate. User ignore globs are unioned with the built-in set;
// a user extension list replaces the built-in set outright.
func (fc FileConfig) ToEngine(workDir string) (engine.Config, error) {
	cfg := engine.Config{
		Paths:            fc.Paths,
		DisabledRules:    fc.DisabledRules,
		MinSeverity:      types.SevLow,
		EnableEntropy:    true,
		EntropyThreshold: rules.DefaultEntropyThreshold,
		MaxFileSize:      engine.DefaultMaxFileSize,
		Allowlist:        fc.Allowlist,
		CustomRules:      fc.CustomRules,
		WorkDir:          workDir,
	}
	if fc.MinSeverity != nil {
		sev, err := types.ParseSeverity(*fc.MinSeverity)
		if err != nil {
			return cfg, fmt.Errorf("minSeverity: %w", err)
		}
		cfg.MinSeverity = sev
	}
	if fc.EnableEntropy != nil {
		cfg.EnableEntropy = *fc.EnableEntropy
	}
	if fc.EntropyThreshold != nil {
		cfg.EntropyThreshold = *fc.EntropyThreshold
	}
	if fc.MaxFileSize != nil {
		cfg.MaxFileSize = *fc.MaxFileSize
	}
	cfg.IgnoreGlobs = append(engine.DefaultIgnoreGlobs(), fc.IgnorePaths...)
	if fc.Extensions != nil {
		cfg.Extensions = fc.Extensions
	} else {
		cfg.Extensions = engine.DefaultExtensions()
	}
	return cfg, nil
}
