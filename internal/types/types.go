package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Severity is an ordered risk level for a finding. Higher values rank higher
// in reports and pass stricter minimum-severity filters.
type Severity int

const (
	SevInfo Severity = iota
	SevLow
	SevMedium
	SevHigh
	SevCritical
)

var severityNames = [...]string{"info", "low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < SevInfo || s > SevCritical {
		return "unknown"
	}
	return severityNames[s]
}

// ParseSeverity maps a lowercase severity name to its Severity value.
func ParseSeverity(name string) (Severity, error) {
	for i, n := range severityNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return Severity(i), nil
		}
	}
	return SevInfo, fmt.Errorf("unknown severity %q (expected info|low|medium|high|critical)", name)
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	v, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Category classifies what kind of secret a rule looks for. It is purely
// descriptive; no detection behavior depends on it.
type Category string

const (
	CatCloudProvider    Category = "cloud-provider"
	CatAPIKey           Category = "api-key"
	CatToken            Category = "token"
	CatPrivateKey       Category = "private-key"
	CatConnectionString Category = "connection-string"
	CatPassword         Category = "password"
	CatCredential       Category = "credential"
	CatCertificate      Category = "certificate"
	CatGeneric          Category = "generic"
)

// ParseCategory validates a category name against the closed set.
func ParseCategory(name string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(name))); c {
	case CatCloudProvider, CatAPIKey, CatToken, CatPrivateKey,
		CatConnectionString, CatPassword, CatCredential, CatCertificate, CatGeneric:
		return c, nil
	}
	return CatGeneric, fmt.Errorf("unknown category %q", name)
}

// Finding describes one detected secret at a specific file, line and column.
// Secret always holds the masked value; the raw secret is folded into the
// fingerprint and never retained.
type Finding struct {
	RuleID      string   `json:"ruleId"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
	Path        string   `json:"path"`
	Line        int      `json:"line"`
	StartColumn int      `json:"startColumn"`
	EndColumn   int      `json:"endColumn"`
	LineText    string   `json:"lineText"`
	Secret      string   `json:"secret"`
	Fingerprint string   `json:"fingerprint"`
}

// AllowlistEntry suppresses findings either by exact fingerprint or by rule
// id, optionally narrowed to paths containing Path as a substring. An entry
// with neither a fingerprint nor a rule id suppresses nothing.
type AllowlistEntry struct {
	Fingerprint string `yaml:"fingerprint,omitempty" json:"fingerprint,omitempty"`
	RuleID      string `yaml:"ruleId,omitempty" json:"ruleId,omitempty"`
	Path        string `yaml:"path,omitempty" json:"path,omitempty"`
	Reason      string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// Matches reports whether this entry suppresses the given finding. The
// fingerprint and ruleId criteria are evaluated independently and OR-ed.
func (e AllowlistEntry) Matches(f Finding) bool {
	if e.Fingerprint != "" && e.Fingerprint == f.Fingerprint {
		return true
	}
	if e.RuleID != "" && e.RuleID == f.RuleID {
		if e.Path == "" || strings.Contains(f.Path, e.Path) {
			return true
		}
	}
	return false
}

// ScanError records a per-file failure that did not abort the scan.
type ScanError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e ScanError) Error() string {
	return e.Path + ": " + e.Message
}

// RuleSummary is the introspection shape returned for catalog listings.
type RuleSummary struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Category    Category `json:"category"`
}

// ScanResult is the final output of a scan: suppressed, filtered and sorted
// findings plus run statistics. It is produced once and never mutated.
type ScanResult struct {
	Findings     []Finding     `json:"findings"`
	FilesScanned int           `json:"filesScanned"`
	LinesScanned int           `json:"linesScanned"`
	Duration     time.Duration `json:"duration"`
	Errors       []ScanError   `json:"errors,omitempty"`
}

// HasSecrets reports whether any finding survived post-processing.
func (r ScanResult) HasSecrets() bool {
	return len(r.Findings) > 0
}

// ExitCode returns the process exit status: non-zero only when secrets were
// found and the caller opted in to failing on them.
func (r ScanResult) ExitCode(failOnFound bool) int {
	if failOnFound && r.HasSecrets() {
		return 1
	}
	return 0
}
