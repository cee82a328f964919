// Package simplify implements the term-rewriting simplification kernel:
// a basic local-rewrite pass, a commutative term combiner, an
// exponential/root normalizer, and a unified fixed-point driver that
// threads a trace.Tree of applied steps.
//
// The bottom-up rewrite-to-fixed-point idiom and the exact-rational
// numeric folding follow the familiar "fold constants eagerly, defer
// everything else" arithmetic-evaluation shape, adapted to work over an
// immutable AST instead of a value stack.
package simplify

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// Basic applies the identity rules, numeric folding, sign normalization
// and fraction normalization, bottom-up, until no rule fires anywhere in
// the tree. It returns the rewritten expression and whether any rewrite
// was applied.
func Basic(expr ast.Expr) (ast.Expr, bool) {
	changedAny := false
	for {
		next, changed := basicPass(expr)
		expr = next
		if !changed {
			return expr, changedAny
		}
		changedAny = true
	}
}

func basicPass(n ast.Expr) (ast.Expr, bool) {
	switch x := n.(type) {
	case nil:
		return nil, false
	case *ast.Number, *ast.Identifier:
		return n, false
	case *ast.Unary:
		operand, changed := basicPass(x.Operand)
		rewritten, ruleChanged := rewriteUnary(x.Op, operand)
		return rewritten, changed || ruleChanged
	case *ast.Binary:
		left, lc := basicPass(x.Left)
		right, rc := basicPass(x.Right)
		rewritten, ruleChanged := rewriteBinary(x.Op, left, right)
		return rewritten, lc || rc || ruleChanged
	case *ast.Fraction:
		num, nc := basicPass(x.Num)
		den, dc := basicPass(x.Den)
		rewritten, ruleChanged := rewriteFraction(num, den)
		return rewritten, nc || dc || ruleChanged
	case *ast.FuncCall:
		args := make([]ast.Expr, len(x.Args))
		changed := false
		for i, a := range x.Args {
			next, c := basicPass(a)
			args[i] = next
			changed = changed || c
		}
		return &ast.FuncCall{Name: x.Name, Args: args, ExpectedArity: x.ExpectedArity}, changed
	case *ast.Integral:
		integrand, c1 := basicPass(x.Integrand)
		lower, c2 := basicPass(x.Lower)
		upper, c3 := basicPass(x.Upper)
		return &ast.Integral{Integrand: integrand, Var: x.Var, Lower: lower, Upper: upper}, c1 || c2 || c3
	case *ast.Sum:
		body, c1 := basicPass(x.Body)
		lower, c2 := basicPass(x.Lower)
		upper, c3 := basicPass(x.Upper)
		return &ast.Sum{Body: body, Var: x.Var, Lower: lower, Upper: upper}, c1 || c2 || c3
	case *ast.Product:
		body, c1 := basicPass(x.Body)
		lower, c2 := basicPass(x.Lower)
		upper, c3 := basicPass(x.Upper)
		return &ast.Product{Body: body, Var: x.Var, Lower: lower, Upper: upper}, c1 || c2 || c3
	default:
		return n, false
	}
}

func rewriteUnary(op ast.UnaryOp, operand ast.Expr) (ast.Expr, bool) {
	if op == ast.UnaryPlus {
		return operand, true
	}
	// UnaryMinus
	if num, ok := operand.(*ast.Number); ok {
		return &ast.Number{Value: num.Value.Neg()}, true
	}
	if inner, ok := operand.(*ast.Unary); ok && inner.Op == ast.UnaryMinus {
		return inner.Operand, true // -(-x) -> x
	}
	return &ast.Unary{Op: ast.UnaryMinus, Operand: operand}, false
}

func rewriteBinary(op ast.BinOp, left, right ast.Expr) (ast.Expr, bool) {
	// Sign normalization first: fold a Unary operand into the operator.
	if op == ast.OpAdd {
		if rn, ok := right.(*ast.Unary); ok && rn.Op == ast.UnaryMinus {
			rewritten, _ := rewriteBinary(ast.OpSub, left, rn.Operand)
			return rewritten, true
		}
	}
	if op == ast.OpSub {
		if rn, ok := right.(*ast.Unary); ok && rn.Op == ast.UnaryMinus {
			rewritten, _ := rewriteBinary(ast.OpAdd, left, rn.Operand)
			return rewritten, true
		}
	}
	if op == ast.OpMul {
		ln, lok := left.(*ast.Unary)
		rn, rok := right.(*ast.Unary)
		if lok && ln.Op == ast.UnaryMinus && rok && rn.Op == ast.UnaryMinus {
			product, _ := rewriteBinary(ast.OpMul, ln.Operand, rn.Operand)
			return product, true
		}
		if lok && ln.Op == ast.UnaryMinus {
			product, _ := rewriteBinary(ast.OpMul, ln.Operand, right)
			return &ast.Unary{Op: ast.UnaryMinus, Operand: product}, true
		}
		if rok && rn.Op == ast.UnaryMinus {
			product, _ := rewriteBinary(ast.OpMul, left, rn.Operand)
			return &ast.Unary{Op: ast.UnaryMinus, Operand: product}, true
		}
	}

	ln, lNum := left.(*ast.Number)
	rn, rNum := right.(*ast.Number)
	if lNum && rNum {
		folded, ok := foldNumeric(op, ln.Value, rn.Value)
		if ok {
			return &ast.Number{Value: folded}, true
		}
	}

	switch op {
	case ast.OpAdd:
		if lNum && ln.Value.IsZero() {
			return right, true
		}
		if rNum && rn.Value.IsZero() {
			return left, true
		}
	case ast.OpSub:
		if rNum && rn.Value.IsZero() {
			return left, true
		}
		if lNum && ln.Value.IsZero() {
			return &ast.Unary{Op: ast.UnaryMinus, Operand: right}, true
		}
	case ast.OpMul:
		if (lNum && ln.Value.IsZero()) || (rNum && rn.Value.IsZero()) {
			return &ast.Number{Value: rational.Zero}, true
		}
		if lNum && ln.Value.Equal(rational.One) {
			return right, true
		}
		if rNum && rn.Value.Equal(rational.One) {
			return left, true
		}
	case ast.OpDiv:
		if rNum && rn.Value.Equal(rational.One) {
			return left, true
		}
		if lNum && ln.Value.IsZero() && !(rNum && rn.Value.IsZero()) {
			return &ast.Number{Value: rational.Zero}, true
		}
	case ast.OpPow:
		if rNum && rn.Value.IsZero() {
			return &ast.Number{Value: rational.One}, true
		}
		if rNum && rn.Value.Equal(rational.One) {
			return left, true
		}
	}
	return &ast.Binary{Op: op, Left: left, Right: right}, false
}

func foldNumeric(op ast.BinOp, a, b rational.Rational) (rational.Rational, bool) {
	switch op {
	case ast.OpAdd:
		return a.Add(b), true
	case ast.OpSub:
		return a.Sub(b), true
	case ast.OpMul:
		return a.Mul(b), true
	case ast.OpDiv:
		if b.IsZero() {
			return rational.Rational{}, false
		}
		q, err := a.Div(b)
		return q, err == nil
	case ast.OpPow:
		if b.IsInteger() {
			n := b.Num()
			if n.IsInt64() {
				p, err := a.PowInt(int(n.Int64()))
				return p, err == nil
			}
		}
		return rational.Rational{}, false
	default:
		return rational.Rational{}, false
	}
}

// rewriteFraction normalizes \frac{a}{b}: numeric/numeric reduces to a
// single Number, nested fractions cross-multiply, and a denominator of 1
// collapses to the numerator.
func rewriteFraction(num, den ast.Expr) (ast.Expr, bool) {
	if dn, ok := den.(*ast.Number); ok && dn.Value.Equal(rational.One) {
		return num, true
	}
	if nn, ok := num.(*ast.Number); ok {
		if dn, ok := den.(*ast.Number); ok && !dn.Value.IsZero() {
			folded, err := nn.Value.Div(dn.Value)
			if err == nil {
				return &ast.Number{Value: folded}, true
			}
		}
	}
	// (a/b)/(c/d) -> (a*d)/(b*c)
	if nf, ok := num.(*ast.Fraction); ok {
		if df, ok := den.(*ast.Fraction); ok {
			newNum := &ast.Binary{Op: ast.OpMul, Left: nf.Num, Right: df.Den}
			newDen := &ast.Binary{Op: ast.OpMul, Left: nf.Den, Right: df.Num}
			return &ast.Fraction{Num: newNum, Den: newDen}, true
		}
		newNum := &ast.Binary{Op: ast.OpMul, Left: nf.Num, Right: den}
		return &ast.Fraction{Num: newNum, Den: nf.Den}, true
	}
	if df, ok := den.(*ast.Fraction); ok {
		newNum := &ast.Binary{Op: ast.OpMul, Left: num, Right: df.Den}
		return &ast.Fraction{Num: newNum, Den: df.Num}, true
	}
	return &ast.Fraction{Num: num, Den: den}, false
}
