package rules

import (
	"regexp"
	"strings"

	"github.com/keygrep/keygrep/internal/redact"
	"github.com/keygrep/keygrep/internal/types"
)

// Rule is the single capability every detection rule exposes: given one line
// of text, produce zero or more findings. Implementations are immutable once
// constructed and safe for concurrent use.
type Rule interface {
	ID() string
	Description() string
	Severity() types.Severity
	Category() types.Category
	Keywords() []string
	Detect(line string, lineNum int, path string) []types.Finding
}

// PatternRule matches a compiled regular expression against each line. An
// optional capture group selects the secret substring within the match.
type PatternRule struct {
	id          string
	description string
	severity    types.Severity
	category    types.Category
	keywords    []string
	re          *regexp.Regexp
	secretGroup int
}

// NewPatternRule compiles pattern into a rule. Keywords, when non-empty, gate
// regex evaluation on a cheap case-insensitive substring check. secretGroup 0
// reports the whole match.
func NewPatternRule(id, description, pattern string, sev types.Severity, cat types.Category, keywords []string, secretGroup int) (*PatternRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &PatternRule{
		id:          id,
		description: description,
		severity:    sev,
		category:    cat,
		keywords:    lowerAll(keywords),
		re:          re,
		secretGroup: secretGroup,
	}, nil
}

func (r *PatternRule) ID() string               { return r.id }
func (r *PatternRule) Description() string      { return r.description }
func (r *PatternRule) Severity() types.Severity { return r.severity }
func (r *PatternRule) Category() types.Category { return r.category }
func (r *PatternRule) Keywords() []string       { return r.keywords }

func (r *PatternRule) Detect(line string, lineNum int, path string) []types.Finding {
	if len(r.keywords) > 0 && !anyKeyword(line, r.keywords) {
		return nil
	}
	matches := r.re.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil
	}
	var out []types.Finding
	for _, m := range matches {
		start, end := m[0], m[1]
		// A configured but absent capture group degrades to the whole match.
		if g := r.secretGroup; g > 0 && 2*g+1 < len(m) && m[2*g] >= 0 {
			start, end = m[2*g], m[2*g+1]
		}
		out = append(out, newFinding(r, path, lineNum, start, end, line))
	}
	return out
}

// newFinding builds a Finding from a secret span within line. Columns are
// 1-based and inclusive of the span; the raw secret is masked and folded into
// the fingerprint.
func newFinding(r Rule, path string, lineNum, start, end int, line string) types.Finding {
	secret := line[start:end]
	return types.Finding{
		RuleID:      r.ID(),
		Description: r.Description(),
		Severity:    r.Severity(),
		Category:    r.Category(),
		Path:        path,
		Line:        lineNum,
		StartColumn: start + 1,
		EndColumn:   end,
		LineText:    line,
		Secret:      redact.Mask(secret),
		Fingerprint: redact.Fingerprint(path, lineNum, r.ID(), secret),
	}
}

func anyKeyword(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func lowerAll(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}
