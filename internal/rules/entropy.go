package rules

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/keygrep/keygrep/internal/types"
)

// EntropyRuleID identifies the statistical detector in the catalog, the
// disabled-rules set and allowlist entries.
const EntropyRuleID = "high-entropy-string"

// defaultMinTokenLen is the shortest quoted token worth scoring.
const defaultMinTokenLen = 20

// DefaultEntropyThreshold is the Shannon-entropy cutoff in bits per
// character above which an unpatterned token is flagged.
const DefaultEntropyThreshold = 4.5

// EntropyRule flags quoted high-entropy tokens that no fixed pattern covers.
// Candidates run through cheap suppression heuristics before scoring so that
// UUIDs, padding and obvious placeholders never reach the report.
type EntropyRule struct {
	threshold float64
	re        *regexp.Regexp
}

// NewEntropyRule builds the entropy rule with the given threshold. A zero or
// negative threshold falls back to the default.
func NewEntropyRule(threshold float64) *EntropyRule {
	if threshold <= 0 {
		threshold = DefaultEntropyThreshold
	}
	return &EntropyRule{
		threshold: threshold,
		re:        regexp.MustCompile(fmt.Sprintf(`["']([A-Za-z0-9+/=_\-]{%d,})["']`, defaultMinTokenLen)),
	}
}

func (r *EntropyRule) ID() string               { return EntropyRuleID }
func (r *EntropyRule) Description() string      { return "High-entropy string" }
func (r *EntropyRule) Severity() types.Severity { return types.SevMedium }
func (r *EntropyRule) Category() types.Category { return types.CatGeneric }
func (r *EntropyRule) Keywords() []string       { return nil }

func (r *EntropyRule) Detect(line string, lineNum int, path string) []types.Finding {
	matches := r.re.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil
	}
	var out []types.Finding
	for _, m := range matches {
		start, end := m[2], m[3]
		candidate := line[start:end]
		if suppressed(candidate) {
			continue
		}
		h := shannonEntropy(candidate)
		if h < r.threshold {
			continue
		}
		f := newFinding(r, path, lineNum, start, end, line)
		f.Description = fmt.Sprintf("High-entropy string (%.2f bits/char)", h)
		out = append(out, f)
	}
	return out
}

// suppressed rejects candidates with secret-unlike shapes: base64 padding
// runs, near-constant strings, placeholder vocabulary, and UUIDs.
func suppressed(s string) bool {
	if strings.HasSuffix(s, "====") {
		return true
	}
	if distinctChars(s) <= 2 {
		return true
	}
	lower := strings.ToLower(s)
	for _, w := range []string{"example", "placeholder", "xxxxxxxx"} {
		if strings.Contains(lower, w) {
			return true
		}
	}
	if strings.Contains(s, "-") && strings.Count(s, "-") == 4 {
		return true
	}
	return false
}

func distinctChars(s string) int {
	seen := map[rune]bool{}
	for _, r := range s {
		seen[r] = true
	}
	return len(seen)
}

// shannonEntropy computes H = -sum p(c) * log2 p(c) over the character
// frequency distribution of s.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	count := map[rune]int{}
	for _, r := range s {
		count[r]++
	}
	h := 0.0
	n := float64(len(s))
	for _, c := range count {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
