// Package output implements the app.ResultWriter output port: small,
// single-purpose adapters plus a factory picking among them, rendering
// an AnalyzeResult or reporting an analysis error.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Stasshe/Latexium-sub002/internal/app"
	domerr "github.com/Stasshe/Latexium-sub002/internal/domain/errors"
)

// --- Stdout text adapter ---

// StdoutAdapter implements app.ResultWriter, printing a human-readable
// rendering of the result to standard output.
type StdoutAdapter struct{}

// NewStdoutAdapter creates an adapter writing to standard output.
func NewStdoutAdapter() *StdoutAdapter {
	return &StdoutAdapter{}
}

// WriteResult implements app.ResultWriter.
func (a *StdoutAdapter) WriteResult(result app.AnalyzeResult) error {
	_, err := fmt.Println(Render(result))
	if err != nil {
		return fmt.Errorf("writing result to stdout: %w", err)
	}
	return nil
}

// WriteError implements app.ResultWriter.
func (a *StdoutAdapter) WriteError(err *domerr.Error) error {
	_, werr := fmt.Fprintln(os.Stderr, err.Error())
	if werr != nil {
		return fmt.Errorf("writing error to stderr: %w", werr)
	}
	return nil
}

// --- JSON stdout adapter ---

// JSONAdapter implements app.ResultWriter, emitting the result (or
// error) as a single JSON object to standard output.
type JSONAdapter struct{}

// NewJSONAdapter creates an adapter writing JSON to standard output.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// WriteResult implements app.ResultWriter.
func (a *JSONAdapter) WriteResult(result app.AnalyzeResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding result as JSON: %w", err)
	}
	return nil
}

// WriteError implements app.ResultWriter.
func (a *JSONAdapter) WriteError(err *domerr.Error) error {
	payload := struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	}{Kind: err.Kind.String(), Message: err.Message}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(payload); encErr != nil {
		return fmt.Errorf("encoding error as JSON: %w", encErr)
	}
	return nil
}

// --- File adapter ---

// FileAdapter implements app.ResultWriter, writing the rendered result
// to a file path, overwriting it if it exists.
type FileAdapter struct {
	filePath string
}

// NewFileAdapter creates an adapter writing to a specific file.
func NewFileAdapter(filePath string) *FileAdapter {
	if filePath == "" {
		panic("output.FileAdapter requires a non-empty file path")
	}
	return &FileAdapter{filePath: filePath}
}

// WriteResult implements app.ResultWriter.
func (a *FileAdapter) WriteResult(result app.AnalyzeResult) error {
	if err := os.WriteFile(a.filePath, []byte(Render(result)+"\n"), 0644); err != nil {
		return fmt.Errorf("writing result to file %q: %w", a.filePath, err)
	}
	return nil
}

// WriteError implements app.ResultWriter.
func (a *FileAdapter) WriteError(err *domerr.Error) error {
	if werr := os.WriteFile(a.filePath, []byte(err.Error()+"\n"), 0644); werr != nil {
		return fmt.Errorf("writing error to file %q: %w", a.filePath, werr)
	}
	return nil
}

// --- Factory ---

// NewWriterAdapter picks a ResultWriter by output path and format: an
// empty path writes to stdout (plain text, or JSON when asJSON is set);
// a non-empty path writes the plain-text rendering to that file.
func NewWriterAdapter(outputPath string, asJSON bool) app.ResultWriter {
	if outputPath == "" {
		if asJSON {
			return NewJSONAdapter()
		}
		return NewStdoutAdapter()
	}
	return NewFileAdapter(outputPath)
}

// Render formats an AnalyzeResult as the plain-text block every
// non-JSON writer shares: the re-rendered LaTeX, any step trace, and
// the task-specific payload.
func Render(result app.AnalyzeResult) string {
	out := result.Rendered
	if result.Value != nil {
		if result.Value.IsExact {
			out += fmt.Sprintf("\n= %s", result.Value.Exact)
		} else {
			out += fmt.Sprintf("\n≈ %g", result.Value.Approximate)
		}
	}
	if result.PolynomialInfo != nil {
		p := result.PolynomialInfo
		out += fmt.Sprintf("\nvariable: %s, degree: %d, leading coefficient: %s\nfactored: %s",
			p.Variable, p.Degree, p.LeadingCoeff, p.FactoredForm)
	}
	for _, step := range result.Steps {
		out += "\n  - " + step
	}
	return out
}
