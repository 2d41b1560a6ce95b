// Package report renders sorted validation findings as text or JSON and
// computes the run's pass/fail outcome. Output on unchanged input is
// byte-identical across runs: findings are ordered by an explicit sort key
// (severity, rule, path, line, message) rather than rule completion order.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/agentlint/agentlint/pkg/rules"
)

// Report is an immutable, ordered view over one run's findings
type Report struct {
	Findings []rules.Finding `json:"findings"`
	Errors   int             `json:"errors"`
	Warnings int             `json:"warnings"`
}

// New sorts the findings deterministically and tallies severities
func New(findings []rules.Finding) *Report {
	sorted := make([]rules.Finding, len(findings))
	copy(sorted, findings)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Severity != b.Severity {
			return a.Severity == rules.SeverityError
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})

	r := &Report{Findings: sorted}
	for _, f := range sorted {
		switch f.Severity {
		case rules.SeverityError:
			r.Errors++
		case rules.SeverityWarning:
			r.Warnings++
		}
	}
	return r
}

// Failed reports whether the run should exit non-zero
func (r *Report) Failed(warningsAsError bool) bool {
	if r.Errors > 0 {
		return true
	}
	return warningsAsError && r.Warnings > 0
}

// Summary is the trailing one-line tally
func (r *Report) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", r.Errors, r.Warnings)
}

// WriteText prints one line per finding, errors before warnings, followed by
// the summary line.
func (r *Report) WriteText(w io.Writer) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)

	for _, f := range r.Findings {
		severity := errorColor.Sprint(f.Severity)
		if f.Severity == rules.SeverityWarning {
			severity = warningColor.Sprint(f.Severity)
		}

		location := f.Path
		if f.Line > 0 {
			location = fmt.Sprintf("%s:%d", f.Path, f.Line)
		}

		fmt.Fprintf(w, "%s %s %s %s\n", severity, f.Rule, location, f.Message)
	}

	if len(r.Findings) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, r.Summary())
}

// WriteJSON prints the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
