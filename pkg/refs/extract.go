package refs

import (
	"context"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentlint/agentlint/pkg/corpus"
)

var (
	// [label](target), optionally with a quoted title
	markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

	// `references/...`, `assets/...`, `scripts/...` sidecar paths written
	// as inline literals instead of links, only meaningful in skill docs
	backtickPathPattern = regexp.MustCompile("`((?:references|assets|scripts)/[^`\\s]+)`")

	// prose trigger phrases followed by a backticked agent name; the
	// trigger is case-insensitive, the name itself is not
	agentMentionPattern = regexp.MustCompile("(?i:works with|related agents?|use agent):?\\s+`([a-z0-9][a-z0-9_-]*)`")

	// /command-name tokens at line start or after whitespace
	commandMentionPattern = regexp.MustCompile(`(?:^|\s)/([a-z][a-z0-9]*(?:[-_:][a-z0-9]+)*)`)

	// the word "skill" followed by a backticked skill name
	skillMentionPattern = regexp.MustCompile("\\b(?i:skill)\\s+`([a-z][a-z0-9]*(?:[-_][a-z0-9]+)*)`")
)

// Extract scans an asset's body and returns its reference edges in
// deterministic order (line, kind, target). A single physical line may yield
// multiple edges; detectors are independent and may overlap.
func Extract(a *corpus.Asset) []*Edge {
	var edges []*Edge

	add := func(line int, kind Kind, target string) {
		edges = append(edges, &Edge{
			Source:   a,
			Line:     line,
			Kind:     kind,
			Target:   target,
			External: kind == KindMarkdownLink && isExternal(target),
		})
	}

	for i, line := range strings.Split(a.Body, "\n") {
		lineNo := a.BodyLine + i

		for _, m := range markdownLinkPattern.FindAllStringSubmatch(line, -1) {
			add(lineNo, KindMarkdownLink, m[1])
		}

		if a.Kind == corpus.KindSkill {
			for _, m := range backtickPathPattern.FindAllStringSubmatch(line, -1) {
				add(lineNo, KindBacktickPath, m[1])
			}
		}

		for _, m := range agentMentionPattern.FindAllStringSubmatch(line, -1) {
			add(lineNo, KindAgentMention, m[1])
		}

		for _, idx := range commandMentionPattern.FindAllStringSubmatchIndex(line, -1) {
			// reject path-like tokens such as /usr/local or /file.md while
			// keeping sentence-final mentions like "run /deploy-check."
			if end := idx[1]; end < len(line) {
				if line[end] == '/' {
					continue
				}
				if line[end] == '.' && end+1 < len(line) && isIdentByte(line[end+1]) {
					continue
				}
			}
			add(lineNo, KindCommandMention, line[idx[2]:idx[3]])
		}

		for _, m := range skillMentionPattern.FindAllStringSubmatch(line, -1) {
			add(lineNo, KindSkillMention, m[1])
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Line != edges[j].Line {
			return edges[i].Line < edges[j].Line
		}
		if edges[i].Kind != edges[j].Kind {
			return kindOrder[edges[i].Kind] < kindOrder[edges[j].Kind]
		}
		return edges[i].Target < edges[j].Target
	})

	return edges
}

// ExtractAll runs extraction over every document asset of the corpus
// concurrently, bounded by workers, and returns the concatenated edge set in
// asset path order. Other-kind assets serve only as link targets and are not
// scanned.
func ExtractAll(ctx context.Context, c *corpus.Corpus, workers int) []*Edge {
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	sources := make([]*corpus.Asset, 0, len(c.Assets))
	for _, a := range c.Assets {
		if a.Kind != corpus.KindOther {
			sources = append(sources, a)
		}
	}

	results := make([][]*Edge, len(sources))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, a := range sources {
		i, a := i, a
		g.Go(func() error {
			results[i] = Extract(a)
			return nil
		})
	}
	_ = g.Wait()

	var edges []*Edge
	for _, r := range results {
		edges = append(edges, r...)
	}
	return edges
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func isExternal(target string) bool {
	return strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "mailto:") ||
		strings.HasPrefix(target, "#")
}
