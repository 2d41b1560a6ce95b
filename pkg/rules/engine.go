package rules

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/logger"
)

// InternalError indicates a defect in a rule itself: given the permissive
// loader, no rule should ever panic on corpus content. It aborts the whole
// run instead of becoming a finding.
type InternalError struct {
	Rule  string
	Panic interface{}
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("rule %s failed internally: %v", e.Rule, e.Panic)
}

// Engine runs a set of rules over a resolved graph
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rules
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rules the engine will run
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Run executes every rule concurrently and returns the concatenated
// findings. Rules are mutually independent pure functions, so each writes to
// its own slot and ordering is restored by the reporter's sort. A panicking
// rule aborts the run with an *InternalError.
func (e *Engine) Run(ctx context.Context, g *graph.Graph) ([]Finding, error) {
	results := make([][]Finding, len(e.rules))

	grp, _ := errgroup.WithContext(ctx)
	for i, r := range e.rules {
		i, r := i, r
		grp.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &InternalError{Rule: r.Name(), Panic: v}
				}
			}()
			results[i] = r.Check(g)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, r := range results {
		findings = append(findings, r...)
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"rules":    len(e.rules),
		"findings": len(findings),
	}).Debug("rule engine finished")

	return findings, nil
}
