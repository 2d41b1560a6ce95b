package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/agentlint/agentlint/pkg/corpus"
	"github.com/agentlint/agentlint/pkg/graph"
	"github.com/agentlint/agentlint/pkg/presenter"
	"github.com/agentlint/agentlint/pkg/refs"
	"github.com/agentlint/agentlint/pkg/report"
	"github.com/agentlint/agentlint/pkg/rules"
)

// Exit codes: 0 clean, 1 failing findings, 2 run-level failure
const (
	exitFindings = 1
	exitFatal    = 2
)

type ValidateConfig struct {
	Rules           []string
	Excludes        []string
	WarningsAsError bool
	Workers         int
	Format          string
}

func NewValidateConfig() *ValidateConfig {
	return &ValidateConfig{Format: "text"}
}

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate the references of a plugin corpus",
	Long: `Validate the corpus rooted at <path>: load all agent, command and skill
documents, extract cross-references, resolve them, and report findings.

The exit code is 0 when no error-severity findings exist, 1 when at least one
exists (warnings count too with --warnings-as-error), and 2 when the corpus
could not be read or a rule failed internally.

Examples:
  agentlint validate ./my-plugin
  agentlint validate ./my-plugin --rules 'missing-*' --warnings-as-error
  agentlint validate ./my-plugin --exclude 'drafts/**' --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := getValidateConfigFromFlags(cmd)

		rep, err := runValidation(cmd.Context(), args[0], config)
		if err != nil {
			presenter.Error(err, "validation aborted")
			os.Exit(exitFatal)
		}

		if config.Format == "json" {
			if err := rep.WriteJSON(os.Stdout); err != nil {
				presenter.Error(err, "failed to write report")
				os.Exit(exitFatal)
			}
		} else {
			rep.WriteText(os.Stdout)
		}

		if rep.Failed(config.WarningsAsError) {
			os.Exit(exitFindings)
		}
	},
}

func init() {
	defaults := NewValidateConfig()
	validateCmd.Flags().StringSlice("rules", defaults.Rules, "Glob patterns selecting the rules to run (default: all)")
	validateCmd.Flags().StringSlice("exclude", defaults.Excludes, "Glob patterns of corpus-relative paths to skip")
	validateCmd.Flags().Bool("warnings-as-error", defaults.WarningsAsError, "Treat warning findings as run failures")
	validateCmd.Flags().Int("workers", defaults.Workers, "Number of files processed concurrently (default: number of CPUs)")
	validateCmd.Flags().String("format", defaults.Format, "Report format (text, json)")
}

func getValidateConfigFromFlags(cmd *cobra.Command) *ValidateConfig {
	config := NewValidateConfig()
	if v, err := cmd.Flags().GetStringSlice("rules"); err == nil {
		config.Rules = v
	}
	if v, err := cmd.Flags().GetStringSlice("exclude"); err == nil {
		config.Excludes = v
	}
	if v, err := cmd.Flags().GetBool("warnings-as-error"); err == nil {
		config.WarningsAsError = v
	}
	if v, err := cmd.Flags().GetInt("workers"); err == nil {
		config.Workers = v
	}
	if v, err := cmd.Flags().GetString("format"); err == nil {
		config.Format = v
	}
	return config
}

// runValidation is the full pipeline: load, extract, resolve, check. It
// returns an error only for run-level failures; findings always come back in
// the report.
func runValidation(ctx context.Context, root string, config *ValidateConfig) (*report.Report, error) {
	if config.Format != "text" && config.Format != "json" {
		return nil, errors.Errorf("unsupported format %q", config.Format)
	}

	opts := []corpus.Option{}
	if len(config.Excludes) > 0 {
		opts = append(opts, corpus.WithExcludes(config.Excludes...))
	}
	if config.Workers > 0 {
		opts = append(opts, corpus.WithWorkers(config.Workers))
	}

	loader, err := corpus.NewLoader(opts...)
	if err != nil {
		return nil, err
	}

	c, err := loader.Load(ctx, root)
	if err != nil {
		return nil, err
	}

	ruleConfig, err := rules.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	edges := refs.ExtractAll(ctx, c, config.Workers)
	g := graph.Build(c, edges)

	selected, err := rules.Select(rules.All(ruleConfig), config.Rules, ruleConfig.DisabledRules)
	if err != nil {
		return nil, err
	}

	findings, err := rules.NewEngine(selected...).Run(ctx, g)
	if err != nil {
		return nil, err
	}

	return report.New(findings), nil
}
