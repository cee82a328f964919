package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/adapters/output"
	"github.com/Stasshe/Latexium-sub002/internal/app"
	"github.com/Stasshe/Latexium-sub002/internal/config"
)

var replTask string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read LaTeX expressions from stdin, one per line, printing the result of --task for each",
	Long: `Read LaTeX expressions from stdin one line at a time, run them through
the requested task, and print each result, in the style of a calculator
read-eval-print loop. Blank lines are ignored; Ctrl-D (EOF) exits.`,
	Run: func(cmd *cobra.Command, args []string) {
		runREPL(app.Task(replTask))
	},
}

func init() {
	replCmd.Flags().StringVar(&replTask, "task", string(app.TaskSimplify), "task to run on each input line (simplify, distribute, factor, analyze-polynomial, parse)")
	rootCmd.AddCommand(replCmd)
}

func runREPL(task app.Task) {
	service := app.NewAnalysisService(config.NewLimits())
	writer := output.NewStdoutAdapter()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("latexium repl (task=%s, Ctrl-D to exit)\n", task)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, err := service.Analyze(line, app.AnalyzeOptions{Task: task})
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		_ = writer.WriteResult(result)
	}
}
