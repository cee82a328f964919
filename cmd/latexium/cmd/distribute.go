package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var distributeCmd = &cobra.Command{
	Use:   "distribute",
	Short: "Simplify with expansion enabled, distributing products over sums",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskDistribute)
	},
}

func init() {
	addInputFlag(distributeCmd)
	rootCmd.AddCommand(distributeCmd)
}
