package rules

import (
	"fmt"

	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/refs"
)

// missingMention flags prose mentions of an agent, command or skill whose
// name does not resolve against the asset set of the matching kind. One
// instance exists per mention kind so the rules stay individually selectable.
type missingMention struct {
	name string
	kind refs.Kind
	what string
}

func missingAgent() *missingMention {
	return &missingMention{name: "missing-agent", kind: refs.KindAgentMention, what: "agent"}
}

func missingCommand() *missingMention {
	return &missingMention{name: "missing-command", kind: refs.KindCommandMention, what: "command"}
}

func missingSkill() *missingMention {
	return &missingMention{name: "missing-skill", kind: refs.KindSkillMention, what: "skill"}
}

func (r *missingMention) Name() string       { return r.name }
func (r *missingMention) Severity() Severity { return SeverityError }
func (r *missingMention) Description() string {
	return fmt.Sprintf("Mentioned %s is not defined in the corpus", r.what)
}

func (r *missingMention) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for _, e := range g.Edges {
		if e.Kind != r.kind || e.Resolved {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     e.Source.Path,
			Line:     e.Line,
			Message:  fmt.Sprintf("%s %q is not defined in the corpus", r.what, e.Target),
		})
	}
	return findings
}
