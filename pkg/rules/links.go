package rules

import (
	"fmt"

	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/refs"
)

// brokenLink flags markdown-link and backtick-path edges whose target does
// not exist in the corpus snapshot. External targets are out of scope.
type brokenLink struct{}

func (r *brokenLink) Name() string       { return "broken-link" }
func (r *brokenLink) Severity() Severity { return SeverityError }
func (r *brokenLink) Description() string {
	return "Link target does not exist in the corpus"
}

func (r *brokenLink) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for _, e := range g.Edges {
		if !e.IsLink() || e.External || e.Resolved {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     e.Source.Path,
			Line:     e.Line,
			Message:  fmt.Sprintf("link target %q does not exist", e.Target),
		})
	}
	return findings
}

// badReferenceFormat flags sidecar paths written as backticked literals in a
// skill document. They are expected to be markdown links so the sidecar is
// reachable by readers; the finding fires whether or not the path exists.
type badReferenceFormat struct{}

func (r *badReferenceFormat) Name() string       { return "bad-reference-format" }
func (r *badReferenceFormat) Severity() Severity { return SeverityError }
func (r *badReferenceFormat) Description() string {
	return "Sidecar path written as a backtick literal instead of a markdown link"
}

func (r *badReferenceFormat) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for _, e := range g.Edges {
		if e.Kind != refs.KindBacktickPath {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     e.Source.Path,
			Line:     e.Line,
			Message:  fmt.Sprintf("sidecar path `%s` should be a markdown link", e.Target),
		})
	}
	return findings
}
