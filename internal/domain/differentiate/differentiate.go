// Package differentiate implements the boundary "differentiate" task: a
// single-variable symbolic derivative, built as a thin AST-to-AST
// rewrite followed by a core simplify pass. It is a consumer of the
// core AST and simplifier, not new core machinery (no limits, no
// integration).
package differentiate

import (
	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/errors"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
	"github.com/Stasshe/Latexium-sub002/internal/domain/simplify"
)

// Differentiate returns d(expr)/d(variable), simplified to a fixed point.
func Differentiate(expr ast.Expr, variable string) (ast.Expr, error) {
	raw, err := derive(expr, variable)
	if err != nil {
		return nil, err
	}
	simplified, _ := simplify.Simplify(raw, simplify.Options{Expand: false, Factor: false, MaxPasses: simplify.DefaultMaxPasses})
	return simplified, nil
}

func num(n int64) ast.Expr { return &ast.Number{Value: rational.FromInt64(n)} }

func frac(num, den int64) ast.Expr {
	r, _ := rational.FromInts(num, den)
	return &ast.Number{Value: r}
}

func dependsOn(expr ast.Expr, variable string) bool {
	switch n := expr.(type) {
	case *ast.Number:
		return false
	case *ast.Identifier:
		return n.Name == variable
	case *ast.Unary:
		return dependsOn(n.Operand, variable)
	case *ast.Binary:
		return dependsOn(n.Left, variable) || dependsOn(n.Right, variable)
	case *ast.Fraction:
		return dependsOn(n.Num, variable) || dependsOn(n.Den, variable)
	case *ast.FuncCall:
		for _, a := range n.Args {
			if dependsOn(a, variable) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func derive(expr ast.Expr, v string) (ast.Expr, error) {
	switch n := expr.(type) {
	case *ast.Number:
		return num(0), nil

	case *ast.Identifier:
		if n.Name == v {
			return num(1), nil
		}
		return num(0), nil

	case *ast.Unary:
		inner, err := derive(n.Operand, v)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.UnaryMinus {
			return &ast.Unary{Op: ast.UnaryMinus, Operand: inner}, nil
		}
		return inner, nil

	case *ast.Binary:
		return deriveBinary(n, v)

	case *ast.Fraction:
		return deriveQuotient(n.Num, n.Den, v)

	case *ast.FuncCall:
		return deriveFuncCall(n, v)

	case *ast.Sum:
		if dependsOn(n.Lower, v) || dependsOn(n.Upper, v) {
			return nil, errors.New(errors.Algorithmic, "cannot differentiate a sum whose bounds depend on %q", v)
		}
		body, err := derive(n.Body, v)
		if err != nil {
			return nil, err
		}
		return &ast.Sum{Body: body, Var: n.Var, Lower: n.Lower, Upper: n.Upper}, nil

	case *ast.Product:
		return nil, errors.New(errors.Algorithmic, "differentiating a product (\\prod) is out of scope")

	case *ast.Integral:
		return nil, errors.New(errors.Algorithmic, "differentiating an integral is out of scope")

	default:
		return nil, errors.New(errors.Algorithmic, "differentiate: unhandled node type %T", expr)
	}
}

func deriveBinary(n *ast.Binary, v string) (ast.Expr, error) {
	switch n.Op {
	case ast.OpAdd, ast.OpSub:
		left, err := derive(n.Left, v)
		if err != nil {
			return nil, err
		}
		right, err := derive(n.Right, v)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: n.Op, Left: left, Right: right}, nil

	case ast.OpMul:
		df, err := derive(n.Left, v)
		if err != nil {
			return nil, err
		}
		dg, err := derive(n.Right, v)
		if err != nil {
			return nil, err
		}
		term1 := &ast.Binary{Op: ast.OpMul, Left: df, Right: cloneExpr(n.Right)}
		term2 := &ast.Binary{Op: ast.OpMul, Left: cloneExpr(n.Left), Right: dg}
		return &ast.Binary{Op: ast.OpAdd, Left: term1, Right: term2}, nil

	case ast.OpDiv:
		return deriveQuotient(n.Left, n.Right, v)

	case ast.OpPow:
		return derivePow(n.Left, n.Right, v)

	default:
		return nil, errors.New(errors.Algorithmic, "differentiate: unhandled operator %q", n.Op)
	}
}

func deriveQuotient(f, g ast.Expr, v string) (ast.Expr, error) {
	df, err := derive(f, v)
	if err != nil {
		return nil, err
	}
	dg, err := derive(g, v)
	if err != nil {
		return nil, err
	}
	numerator := &ast.Binary{
		Op:   ast.OpSub,
		Left: &ast.Binary{Op: ast.OpMul, Left: df, Right: cloneExpr(g)},
		Right: &ast.Binary{Op: ast.OpMul, Left: cloneExpr(f), Right: dg},
	}
	denominator := &ast.Binary{Op: ast.OpPow, Left: cloneExpr(g), Right: num(2)}
	return &ast.Fraction{Num: numerator, Den: denominator}, nil
}

func derivePow(base, exp ast.Expr, v string) (ast.Expr, error) {
	baseDepends := dependsOn(base, v)
	expDepends := dependsOn(exp, v)

	switch {
	case !baseDepends && !expDepends:
		return num(0), nil

	case baseDepends && !expDepends:
		// Generalized power rule: d(f^n)/dx = n * f^(n-1) * df/dx.
		db, err := derive(base, v)
		if err != nil {
			return nil, err
		}
		nMinus1 := &ast.Binary{Op: ast.OpSub, Left: cloneExpr(exp), Right: num(1)}
		reduced := &ast.Binary{Op: ast.OpPow, Left: cloneExpr(base), Right: nMinus1}
		return &ast.Binary{
			Op:   ast.OpMul,
			Left: &ast.Binary{Op: ast.OpMul, Left: cloneExpr(exp), Right: reduced},
			Right: db,
		}, nil

	case !baseDepends && expDepends:
		de, err := derive(exp, v)
		if err != nil {
			return nil, err
		}
		if ident, ok := base.(*ast.Identifier); ok && ident.Name == "e" {
			// d(e^g)/dx = e^g * dg/dx
			power := &ast.Binary{Op: ast.OpPow, Left: cloneExpr(base), Right: cloneExpr(exp)}
			return &ast.Binary{Op: ast.OpMul, Left: power, Right: de}, nil
		}
		// d(a^g)/dx = a^g * ln(a) * dg/dx
		power := &ast.Binary{Op: ast.OpPow, Left: cloneExpr(base), Right: cloneExpr(exp)}
		lnBase := &ast.FuncCall{Name: "ln", Args: []ast.Expr{cloneExpr(base)}, ExpectedArity: 1}
		return &ast.Binary{
			Op:   ast.OpMul,
			Left: &ast.Binary{Op: ast.OpMul, Left: power, Right: lnBase},
			Right: de,
		}, nil

	default:
		return nil, errors.New(errors.Algorithmic, "differentiating a^g where both a and g depend on %q is out of scope", v)
	}
}

func deriveFuncCall(n *ast.FuncCall, v string) (ast.Expr, error) {
	if len(n.Args) == 0 {
		return nil, errors.New(errors.Algorithmic, "differentiate: %s requires an argument", n.Name)
	}
	arg := n.Args[0]
	dArg, err := derive(arg, v)
	if err != nil {
		return nil, err
	}
	argC := func() ast.Expr { return cloneExpr(arg) }
	call := func(name string, args ...ast.Expr) ast.Expr {
		return &ast.FuncCall{Name: name, Args: args, ExpectedArity: len(args)}
	}
	mul := func(a, b ast.Expr) ast.Expr { return &ast.Binary{Op: ast.OpMul, Left: a, Right: b} }
	neg := func(a ast.Expr) ast.Expr { return &ast.Unary{Op: ast.UnaryMinus, Operand: a} }

	switch n.Name {
	case "sin":
		return mul(call("cos", argC()), dArg), nil
	case "cos":
		return mul(neg(call("sin", argC())), dArg), nil
	case "tan":
		return &ast.Fraction{Num: dArg, Den: &ast.Binary{Op: ast.OpPow, Left: call("cos", argC()), Right: num(2)}}, nil
	case "exp":
		return mul(call("exp", argC()), dArg), nil
	case "ln":
		return &ast.Fraction{Num: dArg, Den: argC()}, nil
	case "log":
		ln10 := call("ln", num(10))
		return &ast.Fraction{Num: dArg, Den: mul(argC(), ln10)}, nil
	case "sqrt":
		return &ast.Fraction{Num: dArg, Den: mul(num(2), call("sqrt", argC()))}, nil
	case "cbrt":
		// f^(1/3): derivative (1/3) f^(-2/3) df.
		exponent := frac(-2, 3)
		power := &ast.Binary{Op: ast.OpPow, Left: argC(), Right: exponent}
		return mul(mul(frac(1, 3), power), dArg), nil
	case "asin":
		denom := call("sqrt", &ast.Binary{Op: ast.OpSub, Left: num(1), Right: &ast.Binary{Op: ast.OpPow, Left: argC(), Right: num(2)}})
		return &ast.Fraction{Num: dArg, Den: denom}, nil
	case "acos":
		denom := call("sqrt", &ast.Binary{Op: ast.OpSub, Left: num(1), Right: &ast.Binary{Op: ast.OpPow, Left: argC(), Right: num(2)}})
		return neg(&ast.Fraction{Num: dArg, Den: denom}), nil
	case "atan":
		denom := &ast.Binary{Op: ast.OpAdd, Left: num(1), Right: &ast.Binary{Op: ast.OpPow, Left: argC(), Right: num(2)}}
		return &ast.Fraction{Num: dArg, Den: denom}, nil
	case "sinh":
		return mul(call("cosh", argC()), dArg), nil
	case "cosh":
		return mul(call("sinh", argC()), dArg), nil
	case "tanh":
		denom := &ast.Binary{Op: ast.OpPow, Left: call("cosh", argC()), Right: num(2)}
		return &ast.Fraction{Num: dArg, Den: denom}, nil
	case "abs":
		return nil, errors.New(errors.Algorithmic, "abs is not differentiable in closed form at this boundary")
	default:
		return nil, errors.New(errors.Algorithmic, "differentiate: unknown function %q", n.Name)
	}
}

// cloneExpr re-exports ast.Clone for the handful of call sites above that
// need an independent copy of a subexpression reused on both sides of a
// product/quotient rule.
func cloneExpr(e ast.Expr) ast.Expr { return ast.Clone(e) }
