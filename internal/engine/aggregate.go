package engine

import (
	"sort"

	"github.com/keygrep/keygrep/internal/types"
)

// Aggregate applies the post-processing stage to raw findings: allowlist
// suppression, the inclusive minimum-severity filter, and the deterministic
// total ordering.
func Aggregate(cfg Config, findings []types.Finding) []types.Finding {
	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		if suppressedByAllowlist(cfg.Allowlist, f) {
			continue
		}
		if f.Severity < cfg.MinSeverity {
			continue
		}
		out = append(out, f)
	}
	// Severity descending, then path, then line. Stable so identical input
	// sets always order identically.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Line < out[j].Line
	})
	return out
}

// suppressedByAllowlist is the logical OR over all entries.
func suppressedByAllowlist(entries []types.AllowlistEntry, f types.Finding) bool {
	for _, e := range entries {
		if e.Matches(f) {
			return true
		}
	}
	return false
}
