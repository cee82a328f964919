package factor

import (
	"math/big"
	"strconv"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// PowerSubstitutionStrategy detects that the
// set of non-zero exponents shares a common factor k > 1, substitutes
// t = x^k, factors the lower-degree polynomial in t, and back-substitutes.
type PowerSubstitutionStrategy struct{}

func (PowerSubstitutionStrategy) Name() string { return "power-substitution" }
func (PowerSubstitutionStrategy) Priority() int { return 50 }

func (PowerSubstitutionStrategy) CanApply(node ast.Expr, _ Context) bool {
	_, _, k, ok := substitutionForm(node)
	return ok && k > 1
}

func (PowerSubstitutionStrategy) Apply(node ast.Expr, ctx Context) Result {
	name, p, k, ok := substitutionForm(node)
	if !ok || k <= 1 {
		return Result{}
	}

	const substVar = "t"
	substituted := make([]*big.Int, p.Degree()/k+1)
	for i := range substituted {
		substituted[i] = big.NewInt(0)
	}
	for i := 0; i <= p.Degree(); i++ {
		c := p.Coeff(i)
		if c.Sign() == 0 {
			continue
		}
		substituted[i/k] = c
	}
	tPoly := NewPoly(substituted)
	tExpr := ToAST(tPoly, substVar)

	factored, subTree := factorNode(tExpr, Context{Depth: ctx.Depth + 1, KnownIrreducibleKeys: map[string]bool{}})
	if ast.Equal(factored, tExpr) {
		// The substituted polynomial in t didn't factor further, so
		// back-substituting would just reproduce the original
		// expression. Report no change so lower-priority strategies
		// (e.g. Berlekamp-Zassenhaus) get a chance to run.
		return Result{}
	}
	backSubstituted := substituteBack(factored, substVar, name, k)

	steps := []trace.Step{trace.Text("substituted t = " + name + "^" + strconv.Itoa(k))}
	for _, s := range subTree {
		steps = append(steps, s)
	}

	return Result{
		Success:     true,
		Changed:     true,
		AST:         backSubstituted,
		Steps:       steps,
		CanContinue: true,
	}
}

// substituteBack replaces every occurrence of Identifier(varT) with
// varX^k throughout expr.
func substituteBack(expr ast.Expr, varT, varX string, k int) ast.Expr {
	switch x := expr.(type) {
	case *ast.Identifier:
		if x.Name == varT {
			return &ast.Binary{Op: ast.OpPow, Left: &ast.Identifier{Name: varX}, Right: intNode(int64(k))}
		}
		return x
	case *ast.Number:
		return x
	case *ast.Binary:
		return &ast.Binary{Op: x.Op, Left: substituteBack(x.Left, varT, varX, k), Right: substituteBack(x.Right, varT, varX, k)}
	case *ast.Unary:
		return &ast.Unary{Op: x.Op, Operand: substituteBack(x.Operand, varT, varX, k)}
	default:
		return expr
	}
}

// substitutionForm infers the single variable of node, reads its dense
// polynomial, and computes the gcd of every exponent carrying a non-zero
// coefficient.
func substitutionForm(node ast.Expr) (name string, p Poly, k int, ok bool) {
	name, inferOK := ast.InferVariable(node)
	if !inferOK {
		return "", Poly{}, 0, false
	}
	poly, polyOK := FromAST(node, name)
	if !polyOK || poly.Degree() < 2 {
		return "", Poly{}, 0, false
	}
	g := 0
	for i := 0; i <= poly.Degree(); i++ {
		if poly.Coeff(i).Sign() == 0 {
			continue
		}
		if g == 0 {
			g = i
		} else {
			g = gcdInt(g, i)
		}
		if g == 1 {
			break
		}
	}
	return name, poly, g, true
}

func gcdInt(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
