// Package corpus loads a plugin document corpus from disk. A corpus is a
// directory tree containing agent definitions under agents/, command
// definitions under commands/, and skills under skills/<name>/ where each
// skill has a SKILL.md document plus optional sidecar files in its
// references/, assets/ and scripts/ subdirectories.
//
// Loading classifies every file, parses YAML frontmatter from the documents,
// and captures a path snapshot used later for link resolution. The loader
// never mutates corpus files.
package corpus

import "sort"

// Kind classifies an asset by its location in the corpus
type Kind string

// Asset kinds
const (
	KindAgent   Kind = "agent"
	KindCommand Kind = "command"
	KindSkill   Kind = "skill"
	KindOther   Kind = "other"
)

// Meta is the typed view of the common frontmatter fields. Unknown keys are
// preserved separately in Asset.Items.
type Meta struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Model       string `mapstructure:"model"`
	Color       string `mapstructure:"color"`
}

// MetaItem is a single frontmatter entry in declaration order. Values are
// kept verbatim as text regardless of their YAML type.
type MetaItem struct {
	Key   string
	Value string
}

// Asset is a named document unit of the corpus
type Asset struct {
	Kind Kind
	Name string // frontmatter name, falling back to the file stem
	Path string // corpus-relative, slash-separated

	Meta  Meta
	Items []MetaItem

	Body     string // content after the frontmatter block
	BodyLine int    // 1-based file line where the body starts

	// MetaMalformed is set when a frontmatter block opened but could not be
	// parsed cleanly. The loader degrades to empty metadata; the
	// malformed-metadata rule turns this marker into a finding.
	MetaMalformed bool
}

// Stem returns the identifier the asset name is expected to match: the file
// stem, or the skill directory name for skill documents.
func (a *Asset) Stem() string {
	return stemOf(a.Kind, a.Path)
}

// SidecarCategory is the sub-area of a skill directory a sidecar lives in
type SidecarCategory string

// Sidecar categories
const (
	CategoryReferences SidecarCategory = "references"
	CategoryAssets     SidecarCategory = "assets"
	CategoryScripts    SidecarCategory = "scripts"
)

// SidecarFile is a non-document auxiliary file owned by a skill
type SidecarFile struct {
	OwningSkill string          // skill directory name
	Category    SidecarCategory // references, assets or scripts
	RelPath     string          // path under the skill directory
	Path        string          // corpus-relative, slash-separated
}

// Corpus is the immutable result of one load: all assets, all sidecar files,
// and a snapshot of every path that existed under the root at load time.
type Corpus struct {
	Root     string
	Assets   []*Asset
	Sidecars []SidecarFile

	files map[string]struct{}
	dirs  map[string]struct{}
}

// HasFile reports whether a corpus-relative file path existed at load time
func (c *Corpus) HasFile(rel string) bool {
	_, ok := c.files[rel]
	return ok
}

// HasDir reports whether a corpus-relative directory path existed at load time
func (c *Corpus) HasDir(rel string) bool {
	if rel == "" || rel == "." {
		return true
	}
	_, ok := c.dirs[rel]
	return ok
}

// AssetsOfKind returns the assets of the given kind in path order
func (c *Corpus) AssetsOfKind(kind Kind) []*Asset {
	var out []*Asset
	for _, a := range c.Assets {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// SkillDoc returns the skill document for the named skill, or nil
func (c *Corpus) SkillDoc(skill string) *Asset {
	for _, a := range c.Assets {
		if a.Kind == KindSkill && a.Stem() == skill {
			return a
		}
	}
	return nil
}

func (c *Corpus) sort() {
	sort.Slice(c.Assets, func(i, j int) bool { return c.Assets[i].Path < c.Assets[j].Path })
	sort.Slice(c.Sidecars, func(i, j int) bool { return c.Sidecars[i].Path < c.Sidecars[j].Path })
}
