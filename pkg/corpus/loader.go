package corpus

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/agentlint/agentlint/pkg/logger"
)

// skillFileName is the canonical skill document inside a skills/<name>/ directory
const skillFileName = "SKILL.md"

// Loader walks a corpus root and produces the complete asset and sidecar sets
type Loader struct {
	excludes []string
	workers  int
}

// Option is a function that configures a Loader
type Option func(*Loader) error

// WithExcludes adds doublestar glob patterns of corpus-relative paths to skip
func WithExcludes(patterns ...string) Option {
	return func(l *Loader) error {
		for _, p := range patterns {
			if !doublestar.ValidatePattern(p) {
				return errors.Errorf("invalid exclude pattern %q", p)
			}
		}
		l.excludes = append(l.excludes, patterns...)
		return nil
	}
}

// WithWorkers bounds the number of files parsed concurrently
func WithWorkers(n int) Option {
	return func(l *Loader) error {
		if n < 1 {
			return errors.Errorf("worker count must be positive, got %d", n)
		}
		l.workers = n
		return nil
	}
}

// NewLoader creates a loader with optional configuration
func NewLoader(opts ...Option) (*Loader, error) {
	l := &Loader{workers: runtime.NumCPU()}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, errors.Wrap(err, "failed to apply loader option")
		}
	}
	return l, nil
}

// entry is a classified file scheduled for document parsing
type entry struct {
	rel  string
	kind Kind
}

// Load walks root and returns the corpus snapshot. Any unreadable path
// aborts the load with a *ReadError; the happy path never returns a
// partially populated corpus.
func (l *Loader) Load(ctx context.Context, root string) (*Corpus, error) {
	c := &Corpus{
		Root:  root,
		files: make(map[string]struct{}),
		dirs:  make(map[string]struct{}),
	}

	var entries []entry

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if l.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			c.dirs[rel] = struct{}{}
			return nil
		}
		c.files[rel] = struct{}{}

		cl := classify(rel)
		switch {
		case cl.sidecar != nil:
			c.Sidecars = append(c.Sidecars, *cl.sidecar)
		case cl.kind != "":
			entries = append(entries, entry{rel: rel, kind: cl.kind})
		}
		return nil
	})
	if err != nil {
		return nil, &ReadError{Root: root, Err: err}
	}

	if err := l.parseAll(ctx, root, entries, c); err != nil {
		return nil, err
	}

	c.sort()

	logger.G(ctx).WithFields(map[string]interface{}{
		"root":     root,
		"assets":   len(c.Assets),
		"sidecars": len(c.Sidecars),
	}).Debug("corpus loaded")

	return c, nil
}

// parseAll reads and parses the classified documents concurrently. Each file
// is independent; results land in pre-sized slots and are merged only after
// every worker has finished.
func (l *Loader) parseAll(ctx context.Context, root string, entries []entry, c *Corpus) error {
	assets := make([]*Asset, len(entries))
	readErrs := make([]error, len(entries))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(e.rel)))
			if err != nil {
				readErrs[i] = errors.Wrapf(err, "failed to read %s", e.rel)
				return nil
			}
			assets[i] = buildAsset(e.kind, e.rel, content)
			return nil
		})
	}
	_ = g.Wait()

	var merged *multierror.Error
	for _, err := range readErrs {
		merged = multierror.Append(merged, err)
	}
	if err := merged.ErrorOrNil(); err != nil {
		return &ReadError{Root: root, Err: err}
	}

	for _, a := range assets {
		c.Assets = append(c.Assets, a)
	}
	return nil
}

func buildAsset(kind Kind, rel string, content []byte) *Asset {
	doc := parseDocument(content)

	a := &Asset{
		Kind:          kind,
		Path:          rel,
		Meta:          doc.meta,
		Items:         doc.items,
		Body:          doc.body,
		BodyLine:      doc.bodyLine,
		MetaMalformed: doc.malformed,
	}

	a.Name = doc.meta.Name
	if a.Name == "" {
		a.Name = a.Stem()
	}
	return a
}

func (l *Loader) excluded(rel string) bool {
	for _, pattern := range l.excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// classification is the outcome of mapping a file path onto the corpus
// layout conventions
type classification struct {
	kind    Kind
	sidecar *SidecarFile
}

// classify maps a corpus-relative file path to an asset kind or sidecar
// entry. Skill layouts are checked first so that agents/ or commands/
// segments nested inside a skill tree don't shadow sidecar classification.
func classify(rel string) classification {
	segs := strings.Split(rel, "/")
	base := segs[len(segs)-1]

	for i := 0; i+2 < len(segs); i++ {
		if segs[i] != "skills" {
			continue
		}
		skill := segs[i+1]

		if len(segs) == i+3 && base == skillFileName {
			return classification{kind: KindSkill}
		}

		category := SidecarCategory(segs[i+2])
		switch category {
		case CategoryReferences, CategoryAssets, CategoryScripts:
			if len(segs) > i+3 {
				return classification{sidecar: &SidecarFile{
					OwningSkill: skill,
					Category:    category,
					RelPath:     strings.Join(segs[i+2:], "/"),
					Path:        rel,
				}}
			}
		}
		break
	}

	for _, seg := range segs[:len(segs)-1] {
		switch seg {
		case "agents":
			if isMarkdown(base) {
				return classification{kind: KindAgent}
			}
		case "commands":
			if isMarkdown(base) {
				return classification{kind: KindCommand}
			}
		}
	}

	if isText(base) {
		return classification{kind: KindOther}
	}
	return classification{}
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

func isText(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".markdown" || ext == ".txt"
}

func stemOf(kind Kind, rel string) string {
	if kind == KindSkill {
		return path.Base(path.Dir(rel))
	}
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}
