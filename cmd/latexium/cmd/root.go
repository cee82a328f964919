// Package cmd implements the latexium CLI, one Cobra subcommand per
// app.Task: a package-level rootCmd plus sibling files registering
// subcommands in init(), since this engine exposes several distinct
// operations rather than one single pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "latexium",
	Short: "latexium parses, simplifies, and factors LaTeX math expressions",
	Long: `latexium is a symbolic mathematics engine for LaTeX input.

It tokenizes and parses a LaTeX expression into an AST, resolves variable
scope, rewrites the expression to a normal form with a term-rewriting
simplifier, and can factor univariate integer polynomials with a
Berlekamp-Zassenhaus engine (LLL-assisted fallback for degenerate cases).`,
	Version: Version,
}

// Execute runs the root command; main calls this and exits non-zero on error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "", "write the result to a file instead of stdout")
	rootCmd.PersistentFlags().Bool("json", false, "emit the result as JSON (stdout only)")
}

func exitWithError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
