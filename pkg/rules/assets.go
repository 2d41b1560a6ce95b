package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agentlint/agentlint/pkg/corpus"
	"github.com/agentlint/agentlint/pkg/graph"
)

// duplicateName flags assets sharing the same (kind, name). Names are the
// lookup key for mention resolution, so duplicates make references ambiguous.
type duplicateName struct{}

func (r *duplicateName) Name() string       { return "duplicate-asset-name" }
func (r *duplicateName) Severity() Severity { return SeverityError }
func (r *duplicateName) Description() string {
	return "Two assets of the same kind declare the same name"
}

func (r *duplicateName) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for key, assets := range g.Nodes() {
		if len(assets) < 2 {
			continue
		}
		paths := make([]string, len(assets))
		for i, a := range assets {
			paths[i] = a.Path
		}
		sort.Strings(paths)
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     paths[0],
			Message: fmt.Sprintf("%s name %q is declared by multiple files: %s",
				key.Kind, key.Name, strings.Join(paths, ", ")),
		})
	}
	return findings
}

// malformedMetadata surfaces the loader's degraded-frontmatter marker as a
// warning finding. The loader itself never fails on a bad header block.
type malformedMetadata struct{}

func (r *malformedMetadata) Name() string       { return "malformed-metadata" }
func (r *malformedMetadata) Severity() Severity { return SeverityWarning }
func (r *malformedMetadata) Description() string {
	return "Frontmatter block did not parse cleanly"
}

func (r *malformedMetadata) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for _, a := range g.Corpus.Assets {
		if a.Kind == corpus.KindOther || !a.MetaMalformed {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.Name(),
			Severity: r.Severity(),
			Path:     a.Path,
			Line:     1,
			Message:  "frontmatter block is malformed; metadata was ignored",
		})
	}
	return findings
}

var kebabCasePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// namingConvention warns when a declared asset name is not lowercase-kebab
// or disagrees with the file stem it lives under.
type namingConvention struct{}

func (r *namingConvention) Name() string       { return "naming-convention" }
func (r *namingConvention) Severity() Severity { return SeverityWarning }
func (r *namingConvention) Description() string {
	return "Asset name is not lowercase-kebab or does not match its file stem"
}

func (r *namingConvention) Check(g *graph.Graph) []Finding {
	var findings []Finding
	for _, a := range g.Corpus.Assets {
		if a.Kind == corpus.KindOther {
			continue
		}
		if !kebabCasePattern.MatchString(a.Name) {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: r.Severity(),
				Path:     a.Path,
				Message:  fmt.Sprintf("name %q is not lowercase-kebab", a.Name),
			})
		}
		if stem := a.Stem(); a.Name != stem {
			findings = append(findings, Finding{
				Rule:     r.Name(),
				Severity: r.Severity(),
				Path:     a.Path,
				Message:  fmt.Sprintf("name %q does not match file stem %q", a.Name, stem),
			})
		}
	}
	return findings
}
