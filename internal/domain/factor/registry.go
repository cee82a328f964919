package factor

import (
	"sort"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// MaxIterations is the per-call outer-loop guard (default 10 for the
// factorization engine).
const MaxIterations = 10

// MaxPolynomialDegree caps the degree BZ/LLL will attempt.
const MaxPolynomialDegree = 20

// defaultRegistry lists every strategy in descending priority order:
// pattern strategies first, then Berlekamp-Zassenhaus, then the LLL
// fallback.
func defaultRegistry() []Strategy {
	strategies := []Strategy{
		CommonFactorStrategy{},
		DifferenceOfSquaresStrategy{},
		CyclotomicStrategy{},
		QuadraticStrategy{},
		PerfectPowerStrategy{},
		GroupingStrategy{},
		PowerSubstitutionStrategy{},
		BerlekampZassenhausStrategy{},
		LLLStrategy{},
	}
	sort.SliceStable(strategies, func(i, j int) bool {
		return strategies[i].Priority() > strategies[j].Priority()
	})
	return strategies
}

// Factor drives the factorization loop: consult strategies in
// descending priority, apply the first that changes the AST, restart
// the loop, and stop on a full pass with no change or the iteration
// limit. A successfully-factored product then recurses into each factor
// independently.
func Factor(expr ast.Expr) (ast.Expr, trace.Tree) {
	return factorNode(expr, newContext())
}

func factorNode(expr ast.Expr, ctx Context) (ast.Expr, trace.Tree) {
	strategies := defaultRegistry()
	current := expr
	var tree trace.Tree

	for iter := 0; iter < MaxIterations; iter++ {
		applied := false
		for _, strat := range strategies {
			if !strat.CanApply(current, ctx) {
				continue
			}
			result := strat.Apply(current, ctx)
			if !result.Success || !result.Changed {
				continue
			}
			current = result.AST
			tree = tree.Append(trace.Group(strat.Name(), result.Steps...))
			applied = true
			break
		}
		if !applied {
			break
		}
	}

	if mul, ok := current.(*ast.Binary); ok && mul.Op == ast.OpMul {
		left, leftTree := recurseFactor(mul.Left, ctx)
		right, rightTree := recurseFactor(mul.Right, ctx)
		current = &ast.Binary{Op: ast.OpMul, Left: left, Right: right}
		for _, s := range leftTree {
			tree = tree.Append(s)
		}
		for _, s := range rightTree {
			tree = tree.Append(s)
		}
	}

	return current, tree
}

// recurseFactor re-enters factorNode for a factor produced by the outer
// loop, with depth incremented so guards (irreducible-quadratic memo)
// carry forward and runaway recursion is bounded.
func recurseFactor(factorExpr ast.Expr, ctx Context) (ast.Expr, trace.Tree) {
	if ctx.Depth >= MaxIterations {
		return factorExpr, nil
	}
	next := Context{Depth: ctx.Depth + 1, KnownIrreducibleKeys: ctx.KnownIrreducibleKeys}
	return factorNode(factorExpr, next)
}
