package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Infer the single-variable polynomial in an expression and report its degree, leading coefficient, and factorization",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskAnalyzePolynomial)
	},
}

func init() {
	addInputFlag(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
