package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Simplify a LaTeX expression to a normal form",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskSimplify)
	},
}

func init() {
	addInputFlag(simplifyCmd)
	rootCmd.AddCommand(simplifyCmd)
}
