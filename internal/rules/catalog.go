package rules

import (
	"fmt"

	"github.com/keygrep/keygrep/internal/types"
)

// CustomRule is the configuration-facing definition of a user-supplied
// pattern rule. Each definition is validated independently at catalog build
// time; malformed definitions are dropped, never fatal.
type CustomRule struct {
	ID          string   `yaml:"id" json:"id"`
	Description string   `yaml:"description" json:"description"`
	Pattern     string   `yaml:"pattern" json:"pattern"`
	Severity    string   `yaml:"severity" json:"severity"`
	Category    string   `yaml:"category" json:"category"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	SecretGroup int      `yaml:"secretGroup,omitempty" json:"secretGroup,omitempty"`
}

// Options controls which rules end up in a catalog.
type Options struct {
	Disabled         []string
	EnableEntropy    bool
	EntropyThreshold float64
	Custom           []CustomRule
}

// Catalog is the immutable set of active rules for one scan. It is built
// once and read concurrently by every scanning worker.
type Catalog struct {
	rules []Rule
}

// Rules returns the active rules in catalog order.
func (c *Catalog) Rules() []Rule { return c.rules }

// Len reports the number of active rules.
func (c *Catalog) Len() int { return len(c.rules) }

// Summaries lists the catalog contents for introspection.
func (c *Catalog) Summaries() []types.RuleSummary {
	out := make([]types.RuleSummary, 0, len(c.rules))
	for _, r := range c.rules {
		out = append(out, types.RuleSummary{
			ID:          r.ID(),
			Description: r.Description(),
			Severity:    r.Severity(),
			Category:    r.Category(),
		})
	}
	return out
}

// Build assembles the active catalog: built-ins plus successfully compiled
// custom rules, minus disabled ids, minus the entropy rule when disabled.
// Construction errors for dropped custom rules are returned alongside the
// catalog so callers can surface them; they never abort the build.
func Build(opts Options) (*Catalog, []error) {
	disabled := make(map[string]bool, len(opts.Disabled))
	for _, id := range opts.Disabled {
		disabled[id] = true
	}

	var active []Rule
	for _, r := range Builtin() {
		if !disabled[r.ID()] {
			active = append(active, r)
		}
	}
	if opts.EnableEntropy && !disabled[EntropyRuleID] {
		active = append(active, NewEntropyRule(opts.EntropyThreshold))
	}

	var errs []error
	for _, def := range opts.Custom {
		r, err := compileCustom(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !disabled[r.ID()] {
			active = append(active, r)
		}
	}
	return &Catalog{rules: active}, errs
}

func compileCustom(def CustomRule) (Rule, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("custom rule: missing id")
	}
	if def.Pattern == "" {
		return nil, fmt.Errorf("custom rule %q: missing pattern", def.ID)
	}
	sev := types.SevMedium
	if def.Severity != "" {
		v, err := types.ParseSeverity(def.Severity)
		if err != nil {
			return nil, fmt.Errorf("custom rule %q: %w", def.ID, err)
		}
		sev = v
	}
	cat := types.CatGeneric
	if def.Category != "" {
		v, err := types.ParseCategory(def.Category)
		if err != nil {
			return nil, fmt.Errorf("custom rule %q: %w", def.ID, err)
		}
		cat = v
	}
	r, err := NewPatternRule(def.ID, def.Description, def.Pattern, sev, cat, def.Keywords, def.SecretGroup)
	if err != nil {
		return nil, fmt.Errorf("custom rule %q: invalid pattern: %w", def.ID, err)
	}
	return r, nil
}

// Summaries describes the full default catalog (all built-ins plus the
// entropy rule at its default threshold) for catalog introspection.
func Summaries() []types.RuleSummary {
	c, _ := Build(Options{EnableEntropy: true})
	return c.Summaries()
}
