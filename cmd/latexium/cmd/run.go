package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/adapters/cli"
	"github.com/Stasshe/Latexium-sub002/internal/adapters/output"
	"github.com/Stasshe/Latexium-sub002/internal/app"
	"github.com/Stasshe/Latexium-sub002/internal/config"
)

// runTask wires a cli.Adapter and an output.Adapter for the given task
// around a fresh app.AnalysisService and runs one analysis, using a
// simple dependency-injection shape: instantiate adapters, instantiate
// the service, call Run.
func runTask(cmd *cobra.Command, task app.Task) {
	outputFile, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")

	provider := cli.NewAdapter(cmd, task)
	writer := output.NewWriterAdapter(outputFile, asJSON)
	service := app.NewAnalysisService(config.NewLimits())

	if err := service.Run(provider, writer); err != nil {
		exitWithError("%v", err)
	}
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "LaTeX expression string (required)")
	_ = cmd.MarkFlagRequired("input")
}
