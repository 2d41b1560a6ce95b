package rules

import (
	"fmt"

	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/refs"
)

// unlinkedSidecar flags sidecar files that are not reachable through a
// markdown link from their owning skill's SKILL.md. An unreferenced sidecar
// is dead weight the skill can never surface.
type unlinkedSidecar struct{}

func (r *unlinkedSidecar) Name() string       { return "unlinked-sidecar-file" }
func (r *unlinkedSidecar) Severity() Severity { return SeverityError }
func (r *unlinkedSidecar) Description() string {
	return "Sidecar file is not linked from its owning skill document"
}

func (r *unlinkedSidecar) Check(g *graph.Graph) []Finding {
	// resolved markdown-link targets per skill document path
	linked := make(map[string]map[string]bool)
	for _, e := range g.Edges {
		if e.Kind != refs.KindMarkdownLink || !e.Resolved {
			continue
		}
		targets := linked[e.Source.Path]
		if targets == nil {
			targets = make(map[string]bool)
			linked[e.Source.Path] = targets
		}
		targets[e.TargetPath] = true
	}

	var findings []Finding
	for _, s := range g.Corpus.Sidecars {
		doc := g.Corpus.SkillDoc(s.OwningSkill)
		if doc == nil {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: r.Severity(),
				Path:     s.Path,
				Message:  fmt.Sprintf("sidecar file belongs to skill %q which has no SKILL.md", s.OwningSkill),
			})
			continue
		}
		if linked[doc.Path][s.Path] {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     s.Path,
			Message:  fmt.Sprintf("sidecar file is not linked from %s", doc.Path),
		})
	}
	return findings
}
