package simplify

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// maxExpandPower bounds repeated-multiplication expansion of (sum)^n so
// a pathological exponent cannot blow up the AST.
const maxExpandPower = 8

// Distribute implements the `expand` option: multiply products over
// sums, and expand small non-negative integer powers of a sum by
// repeated multiplication. Recurses bottom-up so nested products fully
// distribute in one driver pass.
func Distribute(expr ast.Expr) (ast.Expr, bool) {
	switch x := expr.(type) {
	case nil, *ast.Number, *ast.Identifier:
		return expr, false
	case *ast.Unary:
		operand, c := Distribute(x.Operand)
		return &ast.Unary{Op: x.Op, Operand: operand}, c
	case *ast.Fraction:
		num, nc := Distribute(x.Num)
		den, dc := Distribute(x.Den)
		return &ast.Fraction{Num: num, Den: den}, nc || dc
	case *ast.FuncCall:
		args := make([]ast.Expr, len(x.Args))
		changed := false
		for i, a := range x.Args {
			next, c := Distribute(a)
			args[i] = next
			changed = changed || c
		}
		return &ast.FuncCall{Name: x.Name, Args: args, ExpectedArity: x.ExpectedArity}, changed
	case *ast.Integral:
		body, c := Distribute(x.Integrand)
		return &ast.Integral{Integrand: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Sum:
		body, c := Distribute(x.Body)
		return &ast.Sum{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Product:
		body, c := Distribute(x.Body)
		return &ast.Product{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Binary:
		left, lc := Distribute(x.Left)
		right, rc := Distribute(x.Right)
		rewritten, rulec := distributeBinary(x.Op, left, right)
		return rewritten, lc || rc || rulec
	default:
		return expr, false
	}
}

func distributeBinary(op ast.BinOp, left, right ast.Expr) (ast.Expr, bool) {
	if op == ast.OpMul {
		if isAdditive(left) && isAdditive(right) {
			return multiplyAdditive(left, right), true
		}
		if isAdditive(left) {
			return multiplyScalar(left, right, true), true
		}
		if isAdditive(right) {
			return multiplyScalar(right, left, false), true
		}
	}
	if op == ast.OpPow {
		if isAdditive(left) {
			if n, ok := right.(*ast.Number); ok && n.Value.IsInteger() {
				exp := n.Value.Num()
				if exp.IsInt64() && exp.Int64() >= 0 && exp.Int64() <= maxExpandPower {
					return expandPower(left, int(exp.Int64())), true
				}
			}
		}
	}
	return &ast.Binary{Op: op, Left: left, Right: right}, false
}

func isAdditive(e ast.Expr) bool {
	bin, ok := e.(*ast.Binary)
	return ok && (bin.Op == ast.OpAdd || bin.Op == ast.OpSub)
}

// multiplyScalar distributes a non-additive factor over every addend of
// an additive expression; leftIsSum records operand order for display.
func multiplyScalar(sum, scalar ast.Expr, leftIsSum bool) ast.Expr {
	bin := sum.(*ast.Binary)
	mul := func(term ast.Expr) ast.Expr {
		if leftIsSum {
			return &ast.Binary{Op: ast.OpMul, Left: term, Right: scalar}
		}
		return &ast.Binary{Op: ast.OpMul, Left: scalar, Right: term}
	}
	return &ast.Binary{Op: bin.Op, Left: mul(bin.Left), Right: mul(bin.Right)}
}

// multiplyAdditive distributes two additive expressions over each other
// by full cross-multiplication: (a+b)(c+d) -> ac+ad+bc+bd (with signs
// carried through Sub nodes).
func multiplyAdditive(left, right ast.Expr) ast.Expr {
	leftTerms := flattenAdd(left, 1)
	rightTerms := flattenAdd(right, 1)

	var result ast.Expr
	for _, lt := range leftTerms {
		for _, rt := range rightTerms {
			product := ast.Expr(&ast.Binary{Op: ast.OpMul, Left: lt.expr, Right: rt.expr})
			sign := lt.sign * rt.sign
			if sign < 0 {
				product = &ast.Unary{Op: ast.UnaryMinus, Operand: product}
			}
			if result == nil {
				result = product
			} else {
				result = &ast.Binary{Op: ast.OpAdd, Left: result, Right: product}
			}
		}
	}
	if result == nil {
		return &ast.Number{Value: rational.Zero}
	}
	return result
}

// expandPower expands sum^n by repeated multiplication, n applications
// of multiplyAdditive against the accumulated product.
func expandPower(sum ast.Expr, n int) ast.Expr {
	if n == 0 {
		return &ast.Number{Value: rational.One}
	}
	result := sum
	for i := 1; i < n; i++ {
		result = multiplyAdditive(result, sum)
	}
	return result
}
