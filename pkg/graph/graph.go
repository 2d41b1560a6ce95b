// Package graph assembles the reference graph: nodes are assets keyed by
// (kind, name), edges are the extracted references. Building the graph
// resolves every edge against the corpus snapshot. The build is a pure
// function of its inputs: no filesystem access happens here, so identical
// corpora always produce identical resolution outcomes.
package graph

import (
	"path"
	"strings"

	"github.com/agentlint/agentlint/pkg/corpus"
	"github.com/agentlint/agentlint/pkg/refs"
)

// Key identifies a node in the graph
type Key struct {
	Kind corpus.Kind
	Name string
}

// Graph is the resolved reference graph. Edges are never deleted or merged;
// an unresolved edge stays in the graph as evidence for the rules.
type Graph struct {
	Corpus *corpus.Corpus
	Edges  []*refs.Edge

	nodes map[Key][]*corpus.Asset
}

// Build indexes the assets and resolves every edge's Resolved flag
func Build(c *corpus.Corpus, edges []*refs.Edge) *Graph {
	g := &Graph{
		Corpus: c,
		Edges:  edges,
		nodes:  make(map[Key][]*corpus.Asset),
	}

	for _, a := range c.Assets {
		if a.Kind == corpus.KindOther {
			continue
		}
		key := Key{Kind: a.Kind, Name: a.Name}
		g.nodes[key] = append(g.nodes[key], a)
	}

	for _, e := range edges {
		g.resolve(e)
	}

	return g
}

// Lookup returns the assets registered under (kind, name). More than one
// entry means the corpus violates name uniqueness.
func (g *Graph) Lookup(kind corpus.Kind, name string) []*corpus.Asset {
	return g.nodes[Key{Kind: kind, Name: name}]
}

// Nodes exposes the node index. Callers must treat it as read-only.
func (g *Graph) Nodes() map[Key][]*corpus.Asset {
	return g.nodes
}

func (g *Graph) resolve(e *refs.Edge) {
	if e.External {
		return
	}

	if e.IsLink() {
		target := e.Target
		// anchors resolve against the path part only
		if i := strings.IndexByte(target, '#'); i >= 0 {
			target = target[:i]
		}
		if target == "" {
			return
		}

		p := resolvePath(e.Source.Path, target)
		e.TargetPath = p
		if p == "" {
			return
		}
		e.Resolved = g.Corpus.HasFile(p) || g.Corpus.HasDir(strings.TrimSuffix(p, "/"))
		return
	}

	if kind, ok := e.MentionKind(); ok {
		e.Resolved = len(g.Lookup(kind, e.Target)) > 0
	}
}

// resolvePath turns a link target into a cleaned corpus-relative path.
// Relative targets resolve against the source asset's directory; a leading
// slash resolves from the corpus root. Targets escaping the root yield "".
func resolvePath(sourcePath, target string) string {
	var p string
	if strings.HasPrefix(target, "/") {
		p = path.Clean(strings.TrimPrefix(target, "/"))
	} else {
		p = path.Clean(path.Join(path.Dir(sourcePath), target))
	}

	if p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}
