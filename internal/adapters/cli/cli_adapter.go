// Package cli implements the app.LatexProvider input port using Cobra
// flags: a thin Adapter wrapping a *cobra.Command and reading its flag
// values, with the input/value parsing concerns pulled out so Cobra
// commands can share them.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Stasshe/Latexium-sub002/internal/app"
)

// Adapter implements app.LatexProvider using Cobra flags.
type Adapter struct {
	cmd  *cobra.Command
	task app.Task
}

// NewAdapter creates a CLI adapter bound to cmd, reporting task for
// every GetInput call (one Adapter per subcommand, since each
// subcommand corresponds to exactly one Task).
func NewAdapter(cmd *cobra.Command, task app.Task) *Adapter {
	if cmd.Flag("input") == nil {
		panic("cli.Adapter requires a command with an 'input' flag defined")
	}
	return &Adapter{cmd: cmd, task: task}
}

// GetInput implements app.LatexProvider.
func (a *Adapter) GetInput() (string, app.AnalyzeOptions, error) {
	latex, err := a.cmd.Flags().GetString("input")
	if err != nil {
		return "", app.AnalyzeOptions{}, fmt.Errorf("reading 'input' flag: %w", err)
	}
	if strings.TrimSpace(latex) == "" {
		return "", app.AnalyzeOptions{}, fmt.Errorf("input LaTeX string cannot be empty")
	}

	opts := app.AnalyzeOptions{Task: a.task}

	if f := a.cmd.Flags().Lookup("variable"); f != nil {
		opts.Variable, _ = a.cmd.Flags().GetString("variable")
	}
	if f := a.cmd.Flags().Lookup("precision"); f != nil {
		opts.Precision, _ = a.cmd.Flags().GetInt("precision")
	}
	if f := a.cmd.Flags().Lookup("value"); f != nil {
		raw, _ := a.cmd.Flags().GetStringSlice("value")
		values, parseErr := parseValues(raw)
		if parseErr != nil {
			return "", app.AnalyzeOptions{}, parseErr
		}
		opts.Values = values
	}

	return latex, opts, nil
}

// parseValues turns "x=2,y=3.5" style assignments (one per --value flag
// occurrence) into a name->float64 substitution map for the
// evaluate/approx tasks.
func parseValues(assignments []string) (map[string]float64, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	values := make(map[string]float64, len(assignments))
	for _, raw := range assignments {
		name, numStr, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --value %q, expected name=number", raw)
		}
		name = strings.TrimSpace(name)
		f, err := strconv.ParseFloat(strings.TrimSpace(numStr), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed --value %q: %w", raw, err)
		}
		values[name] = f
	}
	return values, nil
}
