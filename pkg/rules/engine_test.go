package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlint/agentlint/pkg/graph"
)

// panickingRule simulates a defective rule implementation
type panickingRule struct{}

func (r *panickingRule) Name() string        { return "panicking-rule" }
func (r *panickingRule) Severity() Severity  { return SeverityError }
func (r *panickingRule) Description() string { return "always panics" }
func (r *panickingRule) Check(_ *graph.Graph) []Finding {
	panic("boom")
}

func TestEngineRun(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/linker.md": "---\nname: linker\n---\n[broken](missing.md)\nworks with `gone`\n",
	})

	engine := NewEngine(All(nil)...)
	findings, err := engine.Run(context.Background(), g)
	require.NoError(t, err)

	byRule := map[string]int{}
	for _, f := range findings {
		byRule[f.Rule]++
	}
	assert.Equal(t, 1, byRule["broken-link"])
	assert.Equal(t, 1, byRule["missing-agent"])
}

func TestEngineRunCleanCorpus(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/tidy.md": "---\nname: tidy\n---\nnothing to see\n",
	})

	findings, err := NewEngine(All(nil)...).Run(context.Background(), g)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestEnginePanicIsInternalError(t *testing.T) {
	g := buildFixture(t, map[string]string{
		"agents/tidy.md": "---\nname: tidy\n---\nbody\n",
	})

	_, err := NewEngine(&brokenLink{}, &panickingRule{}).Run(context.Background(), g)
	require.Error(t, err)

	var internal *InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "panicking-rule", internal.Rule)
}
