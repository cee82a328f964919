package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Substitute values for free variables and fold the expression to a number",
	Long: `Substitute values for free variables and fold the expression to a number.

Stays in exact rational arithmetic as long as possible, degrading to a
floating-point approximation the moment an irrational or transcendental
operation (sin, ln, an inexact sqrt, ...) is encountered.`,
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskEvaluate)
	},
}

var approxCmd = &cobra.Command{
	Use:   "approx",
	Short: "Alias of evaluate that always reports a decimal approximation",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskApprox)
	},
}

func init() {
	for _, c := range []*cobra.Command{evaluateCmd, approxCmd} {
		addInputFlag(c)
		c.Flags().StringSlice("value", nil, "variable substitution as name=number (repeatable)")
		c.Flags().Int("precision", 0, "decimal precision (accepted, but not applied to the printed result)")
		rootCmd.AddCommand(c)
	}
}
