package rules

import (
	"fmt"
	"strings"

	"github.com/agentlint/agentlint/pkg/graph"
)

// bannedTerm flags configured banned terms appearing in asset bodies. The
// match is a plain case-insensitive substring scan, so it can both over- and
// under-match prose; the rule is best-effort by contract. Inert without
// configured terms.
type bannedTerm struct {
	terms []string
}

func (r *bannedTerm) Name() string       { return "banned-term" }
func (r *bannedTerm) Severity() Severity { return SeverityWarning }
func (r *bannedTerm) Description() string {
	return "Body mentions a term banned by the corpus configuration"
}

func (r *bannedTerm) Check(g *graph.Graph) []Finding {
	if len(r.terms) == 0 {
		return nil
	}

	var findings []Finding
	for _, a := range g.Corpus.Assets {
		for i, line := range strings.Split(a.Body, "\n") {
			lower := strings.ToLower(line)
			for _, term := range r.terms {
				if term == "" || !strings.Contains(lower, strings.ToLower(term)) {
					continue
				}
				findings = append(findings, Finding{
					Rule:     r.Name(),
					Severity: r.Severity(),
					Path:     a.Path,
					Line:     a.BodyLine + i,
					Message:  fmt.Sprintf("banned term %q", term),
				})
			}
		}
	}
	return findings
}
