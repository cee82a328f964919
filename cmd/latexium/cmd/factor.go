package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var factorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Simplify with the polynomial factorization engine enabled",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskFactor)
	},
}

func init() {
	addInputFlag(factorCmd)
	rootCmd.AddCommand(factorCmd)
}
