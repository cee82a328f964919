package simplify

import (
	"fmt"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// DefaultMaxPasses is the fixed-point iteration ceiling, overridable via
// Options.
const DefaultMaxPasses = 15

// FactorFunc invokes the factorization engine on a stabilized
// expression. Wired in by the app layer rather than imported directly,
// so this package never depends on internal/domain/factor.
type FactorFunc func(ast.Expr) (ast.Expr, trace.Tree, bool)

// Options configures one Simplify call's expand/factor toggles.
type Options struct {
	Expand    bool
	Factor    bool
	MaxPasses int
	FactorFn  FactorFunc
}

// Simplify runs the unified fixed-point driver: each pass applies basic
// simplification, exponential normalization, and commutative
// combination, then optionally distribution and factorization, until
// the rendered form stabilizes or MaxPasses is reached. Every pass
// appends a grouped sub-step to the returned trace.Tree.
func Simplify(expr ast.Expr, opts Options) (ast.Expr, trace.Tree) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	var tree trace.Tree
	current := expr
	previousForm := ast.Render(current)

	for pass := 1; pass <= maxPasses; pass++ {
		var steps []trace.Step
		changed := false

		next, c := Basic(current)
		if c {
			steps = append(steps, trace.Text(fmt.Sprintf("basic simplify: %s", ast.Render(next))))
		}
		changed = changed || c
		current = next

		next, c = Normalize(current)
		if c {
			steps = append(steps, trace.Text(fmt.Sprintf("exponential normalize: %s", ast.Render(next))))
		}
		changed = changed || c
		current = next

		next, c = Combine(current)
		if c {
			steps = append(steps, trace.Text(fmt.Sprintf("combine like terms: %s", ast.Render(next))))
		}
		changed = changed || c
		current = next

		if opts.Expand {
			next, c = Distribute(current)
			if c {
				steps = append(steps, trace.Text(fmt.Sprintf("distribute: %s", ast.Render(next))))
			}
			changed = changed || c
			current = next
		}

		if opts.Factor && opts.FactorFn != nil {
			factored, subSteps, c := opts.FactorFn(current)
			if c {
				steps = append(steps, trace.Group("factor", subSteps...))
			}
			changed = changed || c
			current = factored
		}

		if len(steps) > 0 {
			tree = tree.Append(trace.Group(fmt.Sprintf("pass %d", pass), steps...))
		}

		renderedForm := ast.Render(current)
		if !changed || renderedForm == previousForm {
			break
		}
		previousForm = renderedForm
	}

	return current, tree
}
