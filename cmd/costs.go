package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/behavior-planner/lanecost/planner"
)

// costsCmd lists registered cost functions and the default weight table
var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "List available cost functions and default weights",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		defaults := make(map[string]float64)
		for _, c := range planner.DefaultCostConfigs() {
			defaults[c.Name] = c.Weight
		}
		fmt.Fprintln(out, "=== Cost Functions ===")
		for _, name := range planner.ValidCostNames() {
			if w, ok := defaults[name]; ok {
				fmt.Fprintf(out, "%-16s : default weight %g\n", name, w)
			} else {
				fmt.Fprintf(out, "%-16s : not in default table\n", name)
			}
		}
		fmt.Fprintf(out, "\nDefault --costs %q\n", planner.FormatCostConfigs(planner.DefaultCostConfigs()))
	},
}
