package core

import (
	"github.com/keygrep/keygrep/internal/engine"
	"github.com/keygrep/keygrep/internal/rules"
	"github.com/keygrep/keygrep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Finding = types.Finding
type ScanResult = types.ScanResult
type Severity = types.Severity
type AllowlistEntry = types.AllowlistEntry
type RuleSummary = types.RuleSummary

const (
	SevInfo     = types.SevInfo
	SevLow      = types.SevLow
	SevMedium   = types.SevMedium
	SevHigh     = types.SevHigh
	SevCritical = types.SevCritical
)

// DefaultConfig returns a Config with the built-in defaults applied.
func DefaultConfig() Config { return engine.DefaultConfig() }

// Scan is the stable entrypoint for other programs. It runs the full
// pipeline and returns the post-processed result.
func Scan(cfg Config) ScanResult {
	return engine.Scan(cfg)
}

// ListRules returns the built-in rule catalog listing.
// This is exposed for convenience to avoid importing internals directly.
func ListRules() []RuleSummary { return rules.Summaries() }
