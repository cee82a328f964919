package factor

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// GroupingStrategy: for an additive expression
// with at least four terms, enumerate 2-groupings and succeed when both
// groups reduce (via common-factor) to a shared non-trivial binomial.
type GroupingStrategy struct{}

func (GroupingStrategy) Name() string { return "grouping" }
func (GroupingStrategy) Priority() int { return 60 }

func (GroupingStrategy) CanApply(node ast.Expr, _ Context) bool {
	if !isAdditiveRoot(node) {
		return false
	}
	return len(flattenSignedAdd(node, 1)) >= 4
}

func (GroupingStrategy) Apply(node ast.Expr, ctx Context) Result {
	terms := flattenSignedAdd(node, 1)
	n := len(terms)
	// Full enumeration of every 2-way partition of n terms is
	// combinatorially large; restrict to contiguous 2-groupings (the
	// common case: terms already arranged so a grouping split is a
	// contiguous cut), trying every cut point.
	for cut := 2; cut <= n-2; cut++ {
		groupA := rebuildAdditive(terms[:cut])
		groupB := rebuildAdditive(terms[cut:])
		factorA := CommonFactorStrategy{}.Apply(groupA, ctx)
		factorB := CommonFactorStrategy{}.Apply(groupB, ctx)
		if !factorA.Success || !factorB.Success {
			continue
		}
		aMul, aOK := factorA.AST.(*ast.Binary)
		bMul, bOK := factorB.AST.(*ast.Binary)
		if !aOK || !bOK || aMul.Op != ast.OpMul || bMul.Op != ast.OpMul {
			continue
		}
		if !ast.Equal(aMul.Right, bMul.Right) {
			continue
		}
		common := aMul.Right
		sum := &ast.Binary{Op: ast.OpAdd, Left: aMul.Left, Right: bMul.Left}
		product := &ast.Binary{Op: ast.OpMul, Left: sum, Right: common}
		return Result{
			Success:     true,
			Changed:     true,
			AST:         product,
			Steps:       []trace.Step{trace.Text("grouped terms around shared factor " + ast.Render(common))},
			CanContinue: true,
		}
	}
	return Result{}
}

func rebuildAdditive(terms []signedExpr) ast.Expr {
	var expr ast.Expr
	for i, t := range terms {
		term := t.expr
		if i == 0 {
			if t.sign < 0 {
				expr = &ast.Unary{Op: ast.UnaryMinus, Operand: term}
			} else {
				expr = term
			}
			continue
		}
		if t.sign < 0 {
			expr = &ast.Binary{Op: ast.OpSub, Left: expr, Right: term}
		} else {
			expr = &ast.Binary{Op: ast.OpAdd, Left: expr, Right: term}
		}
	}
	return expr
}
