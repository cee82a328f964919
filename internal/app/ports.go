// Package app wires the domain engine (parser, scope resolver,
// simplifier, factorization engine) behind the input/output ports an
// adapter (CLI, future HTTP, test harness) implements, keeping a
// hexagonal split between internal/app and internal/adapters.
package app

import "github.com/Stasshe/Latexium-sub002/internal/domain/errors"

// Task names one of the operations AnalysisService can perform.
type Task string

const (
	// TaskParse only tokenizes, parses, and resolves scope; no rewriting.
	TaskParse Task = "parse"
	// TaskSimplify runs the basic/commutative/exponential driver without factoring.
	TaskSimplify Task = "simplify"
	// TaskDistribute runs the simplify driver with expansion enabled.
	TaskDistribute Task = "distribute"
	// TaskFactor runs the simplify driver with the factorization engine enabled.
	TaskFactor Task = "factor"
	// TaskAnalyzePolynomial infers the polynomial in a single variable and
	// reports degree, leading coefficient, and factorization.
	TaskAnalyzePolynomial Task = "analyze-polynomial"

	// The remaining tasks are boundary-only: evaluate, approx, and
	// differentiate are implemented (thin, not core); the rest report a
	// not-implemented Algorithmic error rather than panicking.
	TaskEvaluate      Task = "evaluate"
	TaskApprox        Task = "approx"
	TaskDifferentiate Task = "differentiate"
	TaskIntegrate     Task = "integrate"
	TaskSolve         Task = "solve"
	TaskMin           Task = "min"
	TaskMax           Task = "max"
	TaskFunctional    Task = "functional"
)

// coreTasks are implemented entirely by the domain engine (including the
// thin evaluate/approx/differentiate boundary consumers of it).
var coreTasks = map[Task]bool{
	TaskParse:             true,
	TaskSimplify:          true,
	TaskDistribute:        true,
	TaskFactor:            true,
	TaskAnalyzePolynomial: true,
	TaskEvaluate:          true,
	TaskApprox:            true,
	TaskDifferentiate:     true,
}

// IsImplemented reports whether t has a working implementation in this
// engine, as opposed to the not-implemented stubs (integrate, solve,
// min, max, functional).
func IsImplemented(t Task) bool { return coreTasks[t] }

// AnalyzeOptions carries the common option fields a dispatched task may
// need: the variable to differentiate/analyze with respect to, a
// substitution map for evaluate/approx, and a decimal precision. No task
// reads Precision; results are formatted the same whatever its value.
type AnalyzeOptions struct {
	Task      Task
	Variable  string
	Values    map[string]float64
	Precision int
}

// ResultValue is the outcome of an evaluate/approx task.
type ResultValue struct {
	Exact       string
	Approximate float64
	IsExact     bool
}

// PolynomialInfo is the outcome of the analyze-polynomial task.
type PolynomialInfo struct {
	Variable     string
	Degree       int
	LeadingCoeff string
	FactoredForm string
}

// AnalyzeResult is the engine's output: the resulting AST rendered back
// to LaTeX, the step trace observed along the way, and (for evaluate,
// approx, or analyze-polynomial) a task-specific payload.
type AnalyzeResult struct {
	Input          string
	Rendered       string
	Steps          []string
	Value          *ResultValue
	PolynomialInfo *PolynomialInfo
}

// LatexProvider is the input port: an adapter supplies the raw LaTeX
// string and the options controlling how it should be analyzed.
type LatexProvider interface {
	GetInput() (latex string, opts AnalyzeOptions, err error)
}

// ResultWriter is the output port: an adapter renders/persists the
// finished AnalyzeResult, or reports the error that aborted analysis.
type ResultWriter interface {
	WriteResult(result AnalyzeResult) error
	WriteError(err *errors.Error) error
}
