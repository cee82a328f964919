package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// DifferenceOfSquaresStrategy: A - B where both
// A and B are perfect squares (structurally u^2) becomes (u-v)(u+v).
type DifferenceOfSquaresStrategy struct{}

func (DifferenceOfSquaresStrategy) Name() string { return "difference-of-squares" }
func (DifferenceOfSquaresStrategy) Priority() int { return 90 }

func (s DifferenceOfSquaresStrategy) CanApply(node ast.Expr, _ Context) bool {
	bin, ok := node.(*ast.Binary)
	if !ok || bin.Op != ast.OpSub {
		return false
	}
	_, aOK := squareRoot(bin.Left)
	_, bOK := squareRoot(bin.Right)
	return aOK && bOK
}

func (s DifferenceOfSquaresStrategy) Apply(node ast.Expr, _ Context) Result {
	bin := node.(*ast.Binary)
	u, aOK := squareRoot(bin.Left)
	v, bOK := squareRoot(bin.Right)
	if !aOK || !bOK {
		return Result{}
	}
	product := &ast.Binary{
		Op:   ast.OpMul,
		Left: &ast.Binary{Op: ast.OpSub, Left: u, Right: v},
		Right: &ast.Binary{Op: ast.OpAdd, Left: u, Right: v},
	}
	return Result{
		Success:     true,
		Changed:     true,
		AST:         product,
		Steps:       []trace.Step{trace.Text("difference of squares: (" + ast.Render(u) + " - " + ast.Render(v) + ")(" + ast.Render(u) + " + " + ast.Render(v) + ")")},
		CanContinue: true,
	}
}

// squareRoot recognizes u^2 (structural power node) or a perfect-square
// integer literal, returning its square root subtree.
func squareRoot(e ast.Expr) (ast.Expr, bool) {
	if bin, ok := e.(*ast.Binary); ok && bin.Op == ast.OpPow {
		if exp, ok := bin.Right.(*ast.Number); ok && exp.Value.IsInteger() && exp.Value.Num().Cmp(big.NewInt(2)) == 0 {
			return bin.Left, true
		}
	}
	if num, ok := e.(*ast.Number); ok && num.Value.IsInteger() && num.Value.Sign() >= 0 {
		root, exact := integerSqrt(num.Value.Num())
		if exact {
			return intNodeBig(root), true
		}
	}
	return nil, false
}

func integerSqrt(v *big.Int) (*big.Int, bool) {
	if v.Sign() == 0 {
		return big.NewInt(0), true
	}
	r := new(big.Int).Sqrt(v)
	sq := new(big.Int).Mul(r, r)
	return r, sq.Cmp(v) == 0
}
