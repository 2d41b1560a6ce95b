package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlint/agentlint/pkg/corpus"
	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/refs"
)

func buildFixture(t *testing.T, files map[string]string) *graph.Graph {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	loader, err := corpus.NewLoader()
	require.NoError(t, err)
	c, err := loader.Load(context.Background(), root)
	require.NoError(t, err)
	return graph.Build(c, refs.ExtractAll(context.Background(), c, 2))
}

func findingsOf(t *testing.T, r Rule, g *graph.Graph) []Finding {
	t.Helper()
	return r.Check(g)
}

func TestBrokenLink(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/linker.md": "---\nname: linker\n---\n" +
			"[ok](../docs/guide.md)\n" +
			"[broken](missing.md)\n" +
			"[web](https://example.com)\n" +
			"[anchor](#top)\n",
		"docs/guide.md": "# Guide\n",
	})

	findings := findingsOf(t, &brokenLink{}, g)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "broken-link", f.Rule)
	assert.Equal(t, SeverityError, f.Severity)
	assert.Equal(t, "agents/linker.md", f.Path)
	assert.Equal(t, 5, f.Line, "line is file-accurate including the frontmatter")
	assert.Contains(t, f.Message, "missing.md")
}

func TestBrokenLinkCoversBacktickPaths(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"skills/wrangle/SKILL.md":            "---\nname: wrangle\n---\n`references/guide.md` and `references/gone.md`\n",
		"skills/wrangle/references/guide.md": "# Guide\n",
	})

	findings := findingsOf(t, &brokenLink{}, g)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "references/gone.md")
}

func TestMissingMentions(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/security-sentinel.md":    "---\nname: security-sentinel\n---\nbody\n",
		"commands/deploy-check.md":       "---\nname: deploy-check\n---\nbody\n",
		"skills/pdf-extraction/SKILL.md": "---\nname: pdf-extraction\n---\nbody\n",
		"commands/caller.md": "---\nname: caller\n---\n" +
			"works with `security-sentinel`\n" +
			"works with `nonexistent-agent`\n" +
			"run /deploy-check then /gone-command\n" +
			"the skill `pdf-extraction` or skill `gone-skill`\n",
	})

	t.Run("missing agent", func(t *testing.T) {
		findings := findingsOf(t, missingAgent(), g)
		require.Len(t, findings, 1)
		assert.Equal(t, "missing-agent", findings[0].Rule)
		assert.Equal(t, 5, findings[0].Line)
		assert.Contains(t, findings[0].Message, "nonexistent-agent")
	})

	t.Run("missing command", func(t *testing.T) {
		findings := findingsOf(t, missingCommand(), g)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "gone-command")
	})

	t.Run("missing skill", func(t *testing.T) {
		findings := findingsOf(t, missingSkill(), g)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "gone-skill")
	})
}

func TestUnlinkedSidecar(t *testing.T) {
	t.Run("linked sidecar produces no finding", func(t *testing.T) {
		g := buildFixture(t, map[string]string{
			"skills/wrangle/SKILL.md":            "---\nname: wrangle\n---\n[guide](references/guide.md)\n",
			"skills/wrangle/references/guide.md": "# Guide\n",
		})
		assert.Empty(t, findingsOf(t, &unlinkedSidecar{}, g))
	})

	t.Run("unlinked sidecar produces exactly one finding", func(t *testing.T) {
		g := buildFixture(t, map[string]string{
			"skills/wrangle/SKILL.md":            "---\nname: wrangle\n---\nno links here\n",
			"skills/wrangle/references/guide.md": "# Guide\n",
		})
		findings := findingsOf(t, &unlinkedSidecar{}, g)
		require.Len(t, findings, 1)
		assert.Equal(t, "unlinked-sidecar-file", findings[0].Rule)
		assert.Equal(t, "skills/wrangle/references/guide.md", findings[0].Path)
	})

	t.Run("backtick literal does not count as linked", func(t *testing.T) {
		g := buildFixture(t, map[string]string{
			"skills/wrangle/SKILL.md":            "---\nname: wrangle\n---\n`references/guide.md`\n",
			"skills/wrangle/references/guide.md": "# Guide\n",
		})
		assert.Len(t, findingsOf(t, &unlinkedSidecar{}, g), 1)
	})

	t.Run("sidecar without skill doc", func(t *testing.T) {
		g := buildFixture(t, map[string]string{
			"skills/orphan/scripts/run.sh": "echo hi\n",
		})
		findings := findingsOf(t, &unlinkedSidecar{}, g)
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, "orphan")
	})
}

func TestBadReferenceFormat(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"skills/wrangle/SKILL.md":            "---\nname: wrangle\n---\nsee `references/guide.md`\n",
		"skills/wrangle/references/guide.md": "# Guide\n",
	})

	findings := findingsOf(t, &badReferenceFormat{}, g)
	require.Len(t, findings, 1, "fires independently of whether the file exists")
	assert.Equal(t, "bad-reference-format", findings[0].Rule)
	assert.Equal(t, SeverityError, findings[0].Severity)
	assert.Equal(t, 4, findings[0].Line)
}

func TestDuplicateName(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/foo.md":        "---\nname: foo\n---\nbody\n",
		"agents/nested/foo.md": "---\nname: foo\n---\nbody\n",
		"commands/foo.md":      "---\nname: foo\n---\nbody\n",
	})

	findings := findingsOf(t, &duplicateName{}, g)
	require.Len(t, findings, 1, "uniqueness is per (kind, name); the command is unaffected")
	f := findings[0]
	assert.Equal(t, "duplicate-asset-name", f.Rule)
	assert.Contains(t, f.Message, "agents/foo.md")
	assert.Contains(t, f.Message, "agents/nested/foo.md")
}

func TestMalformedMetadata(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/broken.md": "---\nname: broken\nno closing delimiter\n",
		"agents/fine.md":   "---\nname: fine\n---\nbody\n",
	})

	findings := findingsOf(t, &malformedMetadata{}, g)
	require.Len(t, findings, 1)
	assert.Equal(t, "malformed-metadata", findings[0].Rule)
	assert.Equal(t, SeverityWarning, findings[0].Severity)
	assert.Equal(t, "agents/broken.md", findings[0].Path)
}

func TestNamingConvention(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/good-agent.md": "---\nname: good-agent\n---\nbody\n",
		"agents/shouty.md":     "---\nname: ShoutyAgent\n---\nbody\n",
		"agents/renamed.md":    "---\nname: something-else\n---\nbody\n",
	})

	findings := findingsOf(t, &namingConvention{}, g)
	byPath := map[string][]Finding{}
	for _, f := range findings {
		byPath[f.Path] = append(byPath[f.Path], f)
	}

	assert.Empty(t, byPath["agents/good-agent.md"])
	require.Len(t, byPath["agents/shouty.md"], 2, "not kebab and does not match stem")
	require.Len(t, byPath["agents/renamed.md"], 1)
	assert.Contains(t, byPath["agents/renamed.md"][0].Message, "stem")
}

func TestBannedTerm(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/chatty.md": "---\nname: chatty\n---\nThis mentions Legacy-Tool twice: legacy-tool.\nClean line.\n",
	})

	t.Run("inert without terms", func(t *testing.T) {
		assert.Empty(t, findingsOf(t, &bannedTerm{}, g))
	})

	t.Run("case-insensitive match per line", func(t *testing.T) {
		findings := findingsOf(t, &bannedTerm{terms: []string{"legacy-tool"}}, g)
		require.Len(t, findings, 1, "one finding per line, not per occurrence")
		assert.Equal(t, SeverityWarning, findings[0].Severity)
		assert.Equal(t, 4, findings[0].Line)
	})
}

func TestSelect(t *testing.T) {
	all := All(nil)

	t.Run("empty patterns select everything", func(t *testing.T) {
		selected, err := Select(all, nil, nil)
		require.NoError(t, err)
		assert.Len(t, selected, len(all))
	})

	t.Run("glob patterns", func(t *testing.T) {
		selected, err := Select(all, []string{"missing-*"}, nil)
		require.NoError(t, err)
		require.Len(t, selected, 3)
		for _, r := range selected {
			assert.Contains(t, r.Name(), "missing-")
		}
	})

	t.Run("disabled rules are removed", func(t *testing.T) {
		selected, err := Select(all, nil, []string{"broken-link"})
		require.NoError(t, err)
		assert.Len(t, selected, len(all)-1)
		for _, r := range selected {
			assert.NotEqual(t, "broken-link", r.Name())
		}
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := Select(all, []string{"[bad"}, nil)
		assert.Error(t, err)
	})
}
