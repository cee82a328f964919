package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse and scope-resolve a LaTeX expression, printing it back out",
	Run: func(cmd *cobra.Command, args []string) {
		runTask(cmd, app.TaskParse)
	},
}

func init() {
	addInputFlag(parseCmd)
	rootCmd.AddCommand(parseCmd)
}
