package app

import (
	"fmt"

	"github.com/Stasshe/Latexium-sub002/internal/config"
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/differentiate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/errors"
	"github.com/Stasshe/Latexium-sub002/internal/domain/evaluate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor"
	"github.com/Stasshe/Latexium-sub002/internal/domain/parser"
	"github.com/Stasshe/Latexium-sub002/internal/domain/scope"
	"github.com/Stasshe/Latexium-sub002/internal/domain/simplify"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// AnalysisService orchestrates Parse -> Dispatch -> Render for every
// Task: a single exported entry point pulling input from a LatexProvider
// and pushing the result (or error) to a ResultWriter.
type AnalysisService struct {
	limits config.Limits
}

// NewAnalysisService builds a service bound to the given resource limits.
func NewAnalysisService(limits config.Limits) *AnalysisService {
	return &AnalysisService{limits: limits}
}

// Run pulls one request from provider, analyzes it, and writes the
// outcome to writer. It never panics: every failure path is surfaced as
// a *errors.Error through WriteError.
func (s *AnalysisService) Run(provider LatexProvider, writer ResultWriter) error {
	latex, opts, err := provider.GetInput()
	if err != nil {
		return writer.WriteError(errors.Wrap(errors.Algorithmic, err, "reading input"))
	}

	result, analyzeErr := s.Analyze(latex, opts)
	if analyzeErr != nil {
		var domainErr *errors.Error
		if de, ok := analyzeErr.(*errors.Error); ok {
			domainErr = de
		} else {
			domainErr = errors.Wrap(errors.Algorithmic, analyzeErr, "analysis failed")
		}
		return writer.WriteError(domainErr)
	}
	return writer.WriteResult(result)
}

// Analyze parses latex and dispatches to the requested Task. Parse
// errors abort before dispatch (scope resolution never fails: free
// variables are simply marked free, not rejected); dispatch errors
// (division by zero, unbound variable, unsupported boundary task)
// abort analysis and are returned verbatim.
func (s *AnalysisService) Analyze(latex string, opts AnalyzeOptions) (AnalyzeResult, error) {
	tree, err := parser.New().Parse(latex)
	if err != nil {
		return AnalyzeResult{}, err
	}
	resolved := scope.NewResolver().Resolve(tree)

	switch opts.Task {
	case "", TaskParse:
		return AnalyzeResult{Input: latex, Rendered: ast.Render(resolved)}, nil

	case TaskSimplify:
		return s.runSimplify(latex, resolved, false, false)
	case TaskDistribute:
		return s.runSimplify(latex, resolved, true, false)
	case TaskFactor:
		return s.runSimplify(latex, resolved, false, true)

	case TaskAnalyzePolynomial:
		return s.analyzePolynomial(latex, resolved)

	case TaskEvaluate, TaskApprox:
		return s.runEvaluate(latex, resolved, opts)

	case TaskDifferentiate:
		return s.runDifferentiate(latex, resolved, opts)

	default:
		if !IsImplemented(opts.Task) {
			return AnalyzeResult{}, errors.New(errors.Algorithmic, "task %q is not implemented in this core", opts.Task)
		}
		return AnalyzeResult{}, errors.New(errors.Algorithmic, "unrecognized task %q", opts.Task)
	}
}

func (s *AnalysisService) factorFn() simplify.FactorFunc {
	return func(e ast.Expr) (ast.Expr, trace.Tree, bool) {
		before := ast.Render(e)
		result, tree := factor.Factor(e)
		return result, tree, ast.Render(result) != before
	}
}

func (s *AnalysisService) runSimplify(latex string, tree ast.Expr, expand, doFactor bool) (AnalyzeResult, error) {
	opts := simplify.Options{
		Expand:    expand,
		Factor:    doFactor,
		MaxPasses: s.limits.MaxSimplifyPasses,
	}
	if doFactor {
		opts.FactorFn = s.factorFn()
	}
	result, trace := simplify.Simplify(tree, opts)
	return AnalyzeResult{
		Input:    latex,
		Rendered: ast.Render(result),
		Steps:    renderSteps(trace),
	}, nil
}

func (s *AnalysisService) analyzePolynomial(latex string, tree ast.Expr) (AnalyzeResult, error) {
	name, ok := ast.InferVariable(tree)
	if !ok {
		return AnalyzeResult{}, errors.New(errors.Algorithmic, "could not infer a single polynomial variable")
	}
	poly, ok := factor.FromAST(tree, name)
	if !ok {
		return AnalyzeResult{}, errors.New(errors.Algorithmic, "expression is not a polynomial in %q", name)
	}
	factored, _ := factor.Factor(tree)
	return AnalyzeResult{
		Input:    latex,
		Rendered: ast.Render(tree),
		PolynomialInfo: &PolynomialInfo{
			Variable:     name,
			Degree:       poly.Degree(),
			LeadingCoeff: poly.Leading().String(),
			FactoredForm: ast.Render(factored),
		},
	}, nil
}

func (s *AnalysisService) runEvaluate(latex string, tree ast.Expr, opts AnalyzeOptions) (AnalyzeResult, error) {
	result, err := evaluate.Evaluate(tree, opts.Values)
	if err != nil {
		return AnalyzeResult{}, err
	}
	value := &ResultValue{IsExact: result.IsExact}
	if result.IsExact {
		value.Exact = result.Exact.String()
		value.Approximate = result.Exact.Float64()
	} else {
		value.Approximate = result.Approx
	}
	if opts.Task == TaskApprox {
		value.IsExact = false
	}
	return AnalyzeResult{Input: latex, Rendered: ast.Render(tree), Value: value}, nil
}

func (s *AnalysisService) runDifferentiate(latex string, tree ast.Expr, opts AnalyzeOptions) (AnalyzeResult, error) {
	if opts.Variable == "" {
		return AnalyzeResult{}, errors.New(errors.Scope, "differentiate requires a variable")
	}
	derivative, err := differentiate.Differentiate(tree, opts.Variable)
	if err != nil {
		return AnalyzeResult{}, err
	}
	return AnalyzeResult{Input: latex, Rendered: ast.Render(derivative)}, nil
}

func renderSteps(t trace.Tree) []string {
	out := make([]string, 0, len(t))
	for _, flat := range t.Flatten() {
		out = append(out, flattenToString(flat))
	}
	return out
}

func flattenToString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []interface{}:
		if len(x) == 0 {
			return ""
		}
		label, _ := x[0].(string)
		return fmt.Sprintf("%s (%d sub-steps)", label, len(x)-1)
	default:
		return fmt.Sprintf("%v", x)
	}
}
