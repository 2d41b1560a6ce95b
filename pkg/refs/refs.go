// Package refs extracts typed cross-reference edges from asset bodies.
// Detection is purely lexical: a fixed set of patterns covering markdown
// hyperlinks, backticked sidecar paths, and prose mentions of agents,
// commands and skills. Extraction is deterministic: the same body always
// yields the same edge set in the same order.
package refs

import (
	"github.com/agentlint/agentlint/pkg/corpus"
)

// Kind is the syntax a reference was written in
type Kind string

// Reference kinds
const (
	KindMarkdownLink   Kind = "markdown-link"
	KindBacktickPath   Kind = "backtick-path"
	KindAgentMention   Kind = "agent-mention"
	KindCommandMention Kind = "command-mention"
	KindSkillMention   Kind = "skill-mention"
)

// kindOrder fixes the within-line ordering of extracted edges
var kindOrder = map[Kind]int{
	KindMarkdownLink:   0,
	KindBacktickPath:   1,
	KindAgentMention:   2,
	KindCommandMention: 3,
	KindSkillMention:   4,
}

// Edge is a directed, typed pointer discovered inside an asset's body.
// Edges are append-only during extraction; only the graph builder sets the
// resolution fields, after which they are read-only.
type Edge struct {
	Source *corpus.Asset
	Line   int    // 1-based line number in the source file
	Kind   Kind
	Target string // raw target text as written

	// External marks targets that are out of scope for resolution
	// (http(s) URLs, mailto, pure anchors). They are never flagged broken.
	External bool

	// Resolved and TargetPath are set during graph resolution. TargetPath is
	// the cleaned corpus-relative path a link-kind edge points at, empty for
	// mention kinds and external targets.
	Resolved   bool
	TargetPath string
}

// IsLink reports whether the edge resolves as a filesystem path rather than
// by asset-name lookup
func (e *Edge) IsLink() bool {
	return e.Kind == KindMarkdownLink || e.Kind == KindBacktickPath
}

// MentionKind returns the asset kind a mention edge resolves against
func (e *Edge) MentionKind() (corpus.Kind, bool) {
	switch e.Kind {
	case KindAgentMention:
		return corpus.KindAgent, true
	case KindCommandMention:
		return corpus.KindCommand, true
	case KindSkillMention:
		return corpus.KindSkill, true
	}
	return "", false
}
