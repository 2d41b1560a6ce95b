// Package rules implements the validation rule set. Each rule is an
// independent, stateless check over the resolved reference graph; rules
// never see each other's output and run in any order. Findings are the only
// output, and no rule mutates the graph or the corpus.
package rules

import (
	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/agentlint/agentlint/pkg/graph"
)

// Severity of a finding
type Severity string

// Severities
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single validator-reported issue
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
}

// Rule is a single validation check over the resolved graph
type Rule interface {
	Name() string
	Severity() Severity
	Description() string
	Check(g *graph.Graph) []Finding
}

// All returns the full rule set. Rules that take configuration (banned-term)
// are inert when the config leaves them empty.
func All(cfg *Config) []Rule {
	if cfg == nil {
		cfg = &Config{}
	}
	return []Rule{
		&brokenLink{},
		missingAgent(),
		missingCommand(),
		missingSkill(),
		&unlinkedSidecar{},
		&badReferenceFormat{},
		&duplicateName{},
		&malformedMetadata{},
		&namingConvention{},
		&bannedTerm{terms: cfg.BannedTerms},
	}
}

// Select filters the rule set by glob patterns (empty selects everything)
// and removes explicitly disabled rule names.
func Select(all []Rule, patterns, disabled []string) ([]Rule, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid rule pattern %q", p)
		}
		globs = append(globs, g)
	}

	off := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		off[name] = true
	}

	var selected []Rule
	for _, r := range all {
		if off[r.Name()] {
			continue
		}
		if len(globs) == 0 {
			selected = append(selected, r)
			continue
		}
		for _, g := range globs {
			if g.Match(r.Name()) {
				selected = append(selected, r)
				break
			}
		}
	}
	return selected, nil
}
