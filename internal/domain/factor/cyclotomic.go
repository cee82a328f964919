package factor

import (
	"math/big"
	"strconv"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// CyclotomicStrategy implements the "cyclotomic / special forms"
// pattern: x^n - 1, and x^n - a^n / x^n + a^n for odd n, emitting the
// standard sum/difference-of-powers decomposition.
type CyclotomicStrategy struct{}

func (CyclotomicStrategy) Name() string { return "cyclotomic" }
func (CyclotomicStrategy) Priority() int { return 85 }

func (CyclotomicStrategy) CanApply(node ast.Expr, _ Context) bool {
	_, _, _, _, ok := cyclotomicForm(node)
	return ok
}

func (CyclotomicStrategy) Apply(node ast.Expr, _ Context) Result {
	base, a, n, isSum, ok := cyclotomicForm(node)
	if !ok {
		return Result{}
	}

	// x^n - a^n = (x - a)(x^{n-1} + x^{n-2}a + ... + a^{n-1})
	// x^n + a^n (odd n) = (x + a)(x^{n-1} - x^{n-2}a + ... + a^{n-1})
	var linear ast.Expr
	if isSum {
		linear = &ast.Binary{Op: ast.OpAdd, Left: base, Right: a}
	} else {
		linear = &ast.Binary{Op: ast.OpSub, Left: base, Right: a}
	}

	var cofactor ast.Expr
	for k := n - 1; k >= 0; k-- {
		term := powerTerm(base, k)
		if k < n-1 {
			term = &ast.Binary{Op: ast.OpMul, Left: term, Right: powerTerm(a, n-1-k)}
		}
		negate := isSum && (n-1-k)%2 == 1
		if cofactor == nil {
			if negate {
				cofactor = &ast.Unary{Op: ast.UnaryMinus, Operand: term}
			} else {
				cofactor = term
			}
			continue
		}
		if negate {
			cofactor = &ast.Binary{Op: ast.OpSub, Left: cofactor, Right: term}
		} else {
			cofactor = &ast.Binary{Op: ast.OpAdd, Left: cofactor, Right: term}
		}
	}

	product := &ast.Binary{Op: ast.OpMul, Left: linear, Right: cofactor}
	return Result{
		Success:     true,
		Changed:     true,
		AST:         product,
		Steps:       []trace.Step{trace.Text("cyclotomic decomposition of degree " + strconv.Itoa(n))},
		CanContinue: true,
	}
}

func powerTerm(base ast.Expr, k int) ast.Expr {
	switch k {
	case 0:
		return intNode(1)
	case 1:
		return base
	default:
		return &ast.Binary{Op: ast.OpPow, Left: base, Right: intNode(int64(k))}
	}
}

// cyclotomicForm recognizes x^n - 1, x^n - a^n, and x^n + a^n (n odd),
// returning (base, a, n, isSum).
func cyclotomicForm(node ast.Expr) (base, a ast.Expr, n int, isSum bool, ok bool) {
	bin, isBin := node.(*ast.Binary)
	if !isBin || (bin.Op != ast.OpSub && bin.Op != ast.OpAdd) {
		return nil, nil, 0, false, false
	}
	leftBase, leftExp, leftOK := powerOf(bin.Left)
	if !leftOK {
		return nil, nil, 0, false, false
	}
	if bin.Op == ast.OpAdd && leftExp%2 == 0 {
		return nil, nil, 0, false, false // even-n sum-of-powers has no real linear factor
	}

	if rightNum, isNum := bin.Right.(*ast.Number); isNum && rightNum.Value.IsInteger() && rightNum.Value.Sign() > 0 {
		root, exact := nthRoot(rightNum.Value.Num(), int64(leftExp))
		if exact {
			return leftBase, intNodeBig(root), leftExp, bin.Op == ast.OpAdd, true
		}
		return nil, nil, 0, false, false
	}
	rightBase, rightExp, rightOK := powerOf(bin.Right)
	if rightOK && rightExp == leftExp {
		return leftBase, rightBase, leftExp, bin.Op == ast.OpAdd, true
	}
	return nil, nil, 0, false, false
}

func powerOf(e ast.Expr) (ast.Expr, int, bool) {
	bin, ok := e.(*ast.Binary)
	if !ok || bin.Op != ast.OpPow {
		return nil, 0, false
	}
	exp, ok := bin.Right.(*ast.Number)
	if !ok || !exp.Value.IsInteger() {
		return nil, 0, false
	}
	n := exp.Value.Num()
	if !n.IsInt64() || n.Int64() < 2 {
		return nil, 0, false
	}
	return bin.Left, int(n.Int64()), true
}

// nthRoot returns (r, true) when v == r^n exactly for an integer r >= 0.
func nthRoot(v *big.Int, n int64) (*big.Int, bool) {
	if v.Sign() == 0 {
		return big.NewInt(0), true
	}
	lo, hi := big.NewInt(1), new(big.Int).Set(v)
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
