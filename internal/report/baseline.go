package report

import (
	"encoding/json"
	"os"

	"github.com/keygrep/keygrep/internal/types"
)

// Baseline is the set of accepted finding fingerprints. Findings whose
// fingerprint is baselined are filtered from subsequent runs.
type Baseline struct {
	Fingerprints map[string]bool `json:"fingerprints"`
}

// LoadBaseline reads a baseline file; a missing file yields an empty
// baseline and the error for callers that care.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Fingerprints: map[string]bool{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return Baseline{Fingerprints: map[string]bool{}}, err
	}
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline records every finding's fingerprint.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Fingerprints: map[string]bool{}}
	for _, f := range findings {
		b.Fingerprints[f.Fingerprint] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

// FilterNew drops findings already present in the baseline.
func FilterNew(findings []types.Finding, base Baseline) []types.Finding {
	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		if !base.Fingerprints[f.Fingerprint] {
			out = append(out, f)
		}
	}
	return out
}
