package simplify

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// Normalize converts sqrt/cbrt/root calls to power form, folds exponent
// arithmetic on like bases, and recognizes perfect-power radicals among
// integer bases. Every rewrite is conservative: no branch choice or
// imaginary intermediate is ever introduced.
func Normalize(expr ast.Expr) (ast.Expr, bool) {
	switch x := expr.(type) {
	case nil, *ast.Number, *ast.Identifier:
		return expr, false
	case *ast.Unary:
		operand, c := Normalize(x.Operand)
		return &ast.Unary{Op: x.Op, Operand: operand}, c
	case *ast.Fraction:
		num, nc := Normalize(x.Num)
		den, dc := Normalize(x.Den)
		return &ast.Fraction{Num: num, Den: den}, nc || dc
	case *ast.FuncCall:
		return normalizeFuncCall(x)
	case *ast.Binary:
		left, lc := Normalize(x.Left)
		right, rc := Normalize(x.Right)
		rewritten, rulec := rewritePowArithmetic(x.Op, left, right)
		return rewritten, lc || rc || rulec
	case *ast.Integral:
		body, c := Normalize(x.Integrand)
		return &ast.Integral{Integrand: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Sum:
		body, c := Normalize(x.Body)
		return &ast.Sum{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	case *ast.Product:
		body, c := Normalize(x.Body)
		return &ast.Product{Body: body, Var: x.Var, Lower: x.Lower, Upper: x.Upper}, c
	default:
		return expr, false
	}
}

func normalizeFuncCall(fc *ast.FuncCall) (ast.Expr, bool) {
	args := make([]ast.Expr, len(fc.Args))
	changed := false
	for i, a := range fc.Args {
		next, c := Normalize(a)
		args[i] = next
		changed = changed || c
	}
	switch fc.Name {
	case "sqrt":
		if len(args) == 1 {
			half, _ := rational.FromInts(1, 2)
			return powOf(args[0], half), true
		}
		// \sqrt[n]{x}: args[0] is the index, args[1] the radicand.
		if n, ok := args[0].(*ast.Number); ok && n.Value.IsInteger() && n.Value.Sign() > 0 {
			inv, err := rational.One.Div(n.Value)
			if err == nil {
				return powOf(args[1], inv), true
			}
		}
		return &ast.FuncCall{Name: fc.Name, Args: args, ExpectedArity: fc.ExpectedArity}, changed
	case "cbrt":
		third, _ := rational.FromInts(1, 3)
		return powOf(args[0], third), true
	case "root":
		if n, ok := args[1].(*ast.Number); ok && n.Value.IsInteger() && n.Value.Sign() > 0 {
			inv, err := rational.One.Div(n.Value)
			if err == nil {
				return powOf(args[0], inv), true
			}
		}
		return &ast.FuncCall{Name: fc.Name, Args: args, ExpectedArity: fc.ExpectedArity}, changed
	default:
		return &ast.FuncCall{Name: fc.Name, Args: args, ExpectedArity: fc.ExpectedArity}, changed
	}
}

func powOf(base ast.Expr, exp rational.Rational) ast.Expr {
	if radical, ok := tryPerfectPower(base, exp); ok {
		return radical
	}
	return &ast.Binary{Op: ast.OpPow, Left: base, Right: &ast.Number{Value: exp}}
}

// tryPerfectPower recognizes base^(1/n) for an integer base that is a
// perfect n-th power, e.g. 8^(1/3) -> 2, folding the radical away.
func tryPerfectPower(base ast.Expr, exp rational.Rational) (ast.Expr, bool) {
	num, ok := base.(*ast.Number)
	if !ok || !num.Value.IsInteger() || !exp.Num().IsInt64() || exp.Num().Int64() != 1 {
		return nil, false
	}
	denom := exp.Denom()
	if !denom.IsInt64() || denom.Int64() <= 1 {
		return nil, false
	}
	n := denom.Int64()
	v := num.Value.Num()
	if v.Sign() < 0 {
		return nil, false
	}
	root, exact := integerNthRoot(v, n)
	if !exact {
		return nil, false
	}
	return &ast.Number{Value: rational.FromBigInt(root)}, true
}

// integerNthRoot returns (r, true) when v == r^n exactly for an
// integer r >= 0, via binary search.
func integerNthRoot(v *big.Int, n int64) (*big.Int, bool) {
	if v.Sign() == 0 {
		return big.NewInt(0), true
	}
	lo := big.NewInt(1)
	hi := new(big.Int).Set(v)
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, big.NewInt(1))
		mid.Rsh(mid, 1)
		p := new(big.Int).Exp(mid, big.NewInt(n), nil)
		switch p.Cmp(v) {
		case 0:
			return mid, true
		case 1:
			hi = new(big.Int).Sub(mid, big.NewInt(1))
		default:
			lo = mid
		}
	}
	p := new(big.Int).Exp(lo, big.NewInt(n), nil)
	return lo, p.Cmp(v) == 0
}

func sameBase(a, b ast.Expr) bool {
	return ast.Equal(a, b)
}

// rewritePowArithmetic folds x^a*x^b, x^a/x^b, (x^a)^b and distributes
// (a*b)^n for a non-negative integer literal n.
func rewritePowArithmetic(op ast.BinOp, left, right ast.Expr) (ast.Expr, bool) {
	switch op {
	case ast.OpMul:
		lb, le, lok := asPower(left)
		rb, re, rok := asPower(right)
		if lok && rok && sameBase(lb, rb) {
			return &ast.Binary{Op: ast.OpPow, Left: lb, Right: &ast.Binary{Op: ast.OpAdd, Left: le, Right: re}}, true
		}
	case ast.OpDiv:
		lb, le, lok := asPower(left)
		rb, re, rok := asPower(right)
		if lok && rok && sameBase(lb, rb) {
			return &ast.Binary{Op: ast.OpPow, Left: lb, Right: &ast.Binary{Op: ast.OpSub, Left: le, Right: re}}, true
		}
	case ast.OpPow:
		if innerBin, ok := left.(*ast.Binary); ok && innerBin.Op == ast.OpPow {
			return &ast.Binary{Op: ast.OpPow, Left: innerBin.Left, Right: &ast.Binary{Op: ast.OpMul, Left: innerBin.Right, Right: right}}, true
		}
		if innerBin, ok := left.(*ast.Binary); ok && innerBin.Op == ast.OpMul {
			if n, ok := right.(*ast.Number); ok && n.Value.IsInteger() && n.Value.Sign() >= 0 {
				return &ast.Binary{
					Op:   ast.OpMul,
					Left: &ast.Binary{Op: ast.OpPow, Left: innerBin.Left, Right: right},
					Right: &ast.Binary{Op: ast.OpPow, Left: innerBin.Right, Right: right},
				}, true
			}
		}
	}
	return &ast.Binary{Op: op, Left: left, Right: right}, false
}

func asPower(e ast.Expr) (base, exp ast.Expr, ok bool) {
	if bin, isBin := e.(*ast.Binary); isBin && bin.Op == ast.OpPow {
		return bin.Left, bin.Right, true
	}
	return e, &ast.Number{Value: rational.One}, true
}
