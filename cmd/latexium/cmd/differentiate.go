package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var differentiateCmd = &cobra.Command{
	Use:   "differentiate",
	Short: "Differentiate a LaTeX expression with respect to a variable",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskDifferentiate)
	},
}

func init() {
	addInputFlag(differentiateCmd)
	differentiateCmd.Flags().String("variable", "", "variable to differentiate with respect to (required)")
	_ = differentiateCmd.MarkFlagRequired("variable")
	rootCmd.AddCommand(differentiateCmd)
}
