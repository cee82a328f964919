// Package evaluate implements the boundary "evaluate"/"approx" tasks:
// substituting concrete values into a parsed AST and folding it down to
// a number. It is a thin consumer of the core AST and rational
// packages, not new core machinery.
package evaluate

import (
	"math"
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/errors"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// Result is a folded numeric value: exact when every operation along the
// way stayed within rational arithmetic, approximate (float64) the
// moment an irrational operation (most functions, most roots) is hit.
type Result struct {
	IsExact bool
	Exact   rational.Rational
	Approx  float64
}

func exact(r rational.Rational) Result { return Result{IsExact: true, Exact: r} }
func approx(f float64) Result          { return Result{IsExact: false, Approx: f} }

func (r Result) asFloat() float64 {
	if r.IsExact {
		return r.Exact.Float64()
	}
	return r.Approx
}

// Evaluate substitutes values for free identifiers and folds expr to a
// single numeric Result. values maps identifier name to a float64; any
// free identifier absent from values is a Scope error.
func Evaluate(expr ast.Expr, values map[string]float64) (Result, error) {
	switch n := expr.(type) {
	case *ast.Number:
		return exact(n.Value), nil

	case *ast.Identifier:
		switch n.Name {
		case "pi":
			return approx(math.Pi), nil
		case "e":
			return approx(math.E), nil
		}
		if v, ok := values[n.Name]; ok {
			return approx(v), nil
		}
		return Result{}, errors.New(errors.Scope, "no value supplied for free variable %q", n.Name)

	case *ast.Unary:
		inner, err := Evaluate(n.Operand, values)
		if err != nil {
			return Result{}, err
		}
		if n.Op == ast.UnaryPlus {
			return inner, nil
		}
		if inner.IsExact {
			return exact(inner.Exact.Neg()), nil
		}
		return approx(-inner.Approx), nil

	case *ast.Binary:
		return evalBinary(n, values)

	case *ast.Fraction:
		num, err := Evaluate(n.Num, values)
		if err != nil {
			return Result{}, err
		}
		den, err := Evaluate(n.Den, values)
		if err != nil {
			return Result{}, err
		}
		return divide(num, den)

	case *ast.FuncCall:
		return evalFuncCall(n, values)

	case *ast.Sum:
		return evalSumProduct(n.Body, n.Var, n.Lower, n.Upper, values, true)

	case *ast.Product:
		return evalSumProduct(n.Body, n.Var, n.Lower, n.Upper, values, false)

	case *ast.Integral:
		return Result{}, errors.New(errors.Algorithmic, "integration is out of scope for this engine")

	default:
		return Result{}, errors.New(errors.Algorithmic, "evaluate: unhandled node type %T", expr)
	}
}

func evalBinary(n *ast.Binary, values map[string]float64) (Result, error) {
	left, err := Evaluate(n.Left, values)
	if err != nil {
		return Result{}, err
	}
	right, err := Evaluate(n.Right, values)
	if err != nil {
		return Result{}, err
	}

	switch n.Op {
	case ast.OpAdd:
		if left.IsExact && right.IsExact {
			return exact(left.Exact.Add(right.Exact)), nil
		}
		return approx(left.asFloat() + right.asFloat()), nil
	case ast.OpSub:
		if left.IsExact && right.IsExact {
			return exact(left.Exact.Sub(right.Exact)), nil
		}
		return approx(left.asFloat() - right.asFloat()), nil
	case ast.OpMul:
		if left.IsExact && right.IsExact {
			return exact(left.Exact.Mul(right.Exact)), nil
		}
		return approx(left.asFloat() * right.asFloat()), nil
	case ast.OpDiv:
		return divide(left, right)
	case ast.OpPow:
		return power(left, right)
	case ast.OpEq, ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe:
		return approx(boolFloat(compare(n.Op, left.asFloat(), right.asFloat()))), nil
	default:
		return Result{}, errors.New(errors.Algorithmic, "evaluate: unhandled operator %q", n.Op)
	}
}

func compare(op ast.BinOp, a, b float64) bool {
	switch op {
	case ast.OpEq:
		return a == b
	case ast.OpLt:
		return a < b
	case ast.OpGt:
		return a > b
	case ast.OpLe:
		return a <= b
	case ast.OpGe:
		return a >= b
	default:
		return false
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func divide(left, right Result) (Result, error) {
	if right.IsExact && right.Exact.IsZero() {
		return Result{}, errors.New(errors.Algorithmic, "division by zero")
	}
	if left.IsExact && right.IsExact {
		q, err := left.Exact.Div(right.Exact)
		if err != nil {
			return Result{}, errors.Wrap(errors.Algorithmic, err, "division by zero")
		}
		return exact(q), nil
	}
	if right.asFloat() == 0 {
		return Result{}, errors.New(errors.Algorithmic, "division by zero")
	}
	return approx(left.asFloat() / right.asFloat()), nil
}

func power(base, exp Result) (Result, error) {
	if base.IsExact && exp.IsExact && exp.Exact.IsInteger() {
		n := exp.Exact.Num().Int64()
		if n >= int64(minInt32) && n <= int64(maxInt32) {
			r, err := base.Exact.PowInt(int(n))
			if err == nil {
				return exact(r), nil
			}
		}
	}
	return approx(math.Pow(base.asFloat(), exp.asFloat())), nil
}

const minInt32 = -1 << 31
const maxInt32 = 1<<31 - 1

func evalFuncCall(n *ast.FuncCall, values map[string]float64) (Result, error) {
	args := make([]Result, len(n.Args))
	for i, a := range n.Args {
		r, err := Evaluate(a, values)
		if err != nil {
			return Result{}, err
		}
		args[i] = r
	}
	if len(args) == 0 {
		return Result{}, errors.New(errors.Algorithmic, "evaluate: %s requires an argument", n.Name)
	}
	x := args[0].asFloat()

	switch n.Name {
	case "sin":
		return approx(math.Sin(x)), nil
	case "cos":
		return approx(math.Cos(x)), nil
	case "tan":
		return approx(math.Tan(x)), nil
	case "asin":
		return approx(math.Asin(x)), nil
	case "acos":
		return approx(math.Acos(x)), nil
	case "atan":
		return approx(math.Atan(x)), nil
	case "sinh":
		return approx(math.Sinh(x)), nil
	case "cosh":
		return approx(math.Cosh(x)), nil
	case "tanh":
		return approx(math.Tanh(x)), nil
	case "exp":
		return approx(math.Exp(x)), nil
	case "ln":
		if x <= 0 {
			return Result{}, errors.New(errors.Algorithmic, "ln of a non-positive value")
		}
		return approx(math.Log(x)), nil
	case "log":
		if x <= 0 {
			return Result{}, errors.New(errors.Algorithmic, "log of a non-positive value")
		}
		return approx(math.Log10(x)), nil
	case "abs":
		if args[0].IsExact {
			return exact(args[0].Exact.Abs()), nil
		}
		return approx(math.Abs(x)), nil
	case "sqrt":
		if x < 0 {
			return Result{}, errors.New(errors.Algorithmic, "square root of a negative value")
		}
		if args[0].IsExact {
			if root, ok := exactSqrt(args[0].Exact); ok {
				return exact(root), nil
			}
		}
		return approx(math.Sqrt(x)), nil
	case "cbrt":
		return approx(math.Cbrt(x)), nil
	case "root":
		if len(args) < 2 {
			return Result{}, errors.New(errors.Algorithmic, "root requires base and index")
		}
		return approx(math.Pow(x, 1/args[1].asFloat())), nil
	default:
		return Result{}, errors.New(errors.Algorithmic, "evaluate: unknown function %q", n.Name)
	}
}

func exactSqrt(r rational.Rational) (rational.Rational, bool) {
	if r.Sign() < 0 {
		return rational.Rational{}, false
	}
	num := r.Num()
	den := r.Denom()
	numRoot, numOK := bigIntSqrt(num)
	denRoot, denOK := bigIntSqrt(den)
	if !numOK || !denOK {
		return rational.Rational{}, false
	}
	out, err := rational.FromBigInts(numRoot, denRoot)
	if err != nil {
		return rational.Rational{}, false
	}
	return out, true
}

func bigIntSqrt(v *big.Int) (*big.Int, bool) {
	if v.Sign() < 0 {
		return nil, false
	}
	root := new(big.Int).Sqrt(v)
	check := new(big.Int).Mul(root, root)
	if check.Cmp(v) != 0 {
		return nil, false
	}
	return root, true
}

func evalSumProduct(body ast.Expr, v string, lower, upper ast.Expr, values map[string]float64, isSum bool) (Result, error) {
	lo, err := Evaluate(lower, values)
	if err != nil {
		return Result{}, err
	}
	hi, err := Evaluate(upper, values)
	if err != nil {
		return Result{}, err
	}
	if !lo.IsExact || !lo.Exact.IsInteger() || !hi.IsExact || !hi.Exact.IsInteger() {
		return Result{}, errors.New(errors.Algorithmic, "sum/product bounds must be exact integers")
	}
	start := lo.Exact.Num().Int64()
	end := hi.Exact.Num().Int64()

	acc := Result{IsExact: true, Exact: rational.Zero}
	if !isSum {
		acc = Result{IsExact: true, Exact: rational.One}
	}
	for i := start; i <= end; i++ {
		scoped := make(map[string]float64, len(values)+1)
		for k, val := range values {
			scoped[k] = val
		}
		scoped[v] = float64(i)
		term, err := Evaluate(body, scoped)
		if err != nil {
			return Result{}, err
		}
		if isSum {
			if acc.IsExact && term.IsExact {
				acc = exact(acc.Exact.Add(term.Exact))
			} else {
				acc = approx(acc.asFloat() + term.asFloat())
			}
		} else {
			if acc.IsExact && term.IsExact {
				acc = exact(acc.Exact.Mul(term.Exact))
			} else {
				acc = approx(acc.asFloat() * term.asFloat())
			}
		}
	}
	return acc, nil
}
