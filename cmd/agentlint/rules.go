package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentlint/agentlint/pkg/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the validation rules",
	Long:  `List all validation rules with their names, severities and descriptions.`,
	Run: func(_ *cobra.Command, _ []string) {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSEVERITY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t--------\t-----------")
		for _, r := range rules.All(nil) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name(), r.Severity(), r.Description())
		}
		tw.Flush()
	},
}
