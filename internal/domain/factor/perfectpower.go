package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// PerfectPowerStrategy detects that an
// (already-expanded) additive expression equals (a x + b)^n for some
// integer a, b and n >= 3, by matching ratios of binomial coefficients.
// Quadratics are not matched.
type PerfectPowerStrategy struct{}

func (PerfectPowerStrategy) Name() string { return "perfect-power" }
func (PerfectPowerStrategy) Priority() int { return 70 }

func (PerfectPowerStrategy) CanApply(node ast.Expr, _ Context) bool {
	_, _, _, ok := perfectPowerForm(node)
	return ok
}

func (PerfectPowerStrategy) Apply(node ast.Expr, _ Context) Result {
	a, b, n, ok := perfectPowerForm(node)
	if !ok {
		return Result{}
	}
	name, _ := ast.InferVariable(node)
	binomial := &ast.Binary{Op: ast.OpAdd, Left: scaledVar(a, name), Right: intNodeBig(b)}
	result := &ast.Binary{Op: ast.OpPow, Left: binomial, Right: intNode(int64(n))}
	return Result{
		Success:     true,
		Changed:     true,
		AST:         result,
		Steps:       []trace.Step{trace.Text("recognized perfect power " + ast.Render(result))},
		CanContinue: true,
	}
}

// perfectPowerForm matches node against (a x + b)^n by recovering a from
// the leading coefficient, b from the constant term, and verifying every
// intermediate coefficient against the binomial expansion.
func perfectPowerForm(node ast.Expr) (a, b *big.Int, n int, ok bool) {
	name, inferOK := ast.InferVariable(node)
	if !inferOK {
		return nil, nil, 0, false
	}
	p, polyOK := FromAST(node, name)
	if !polyOK || p.Degree() < 3 {
		return nil, nil, 0, false
	}
	deg := p.Degree()

	aRoot, aExact := nthRoot(new(big.Int).Abs(p.Leading()), int64(deg))
	if !aExact {
		return nil, nil, 0, false
	}
	if p.Coeff(0).Sign() == 0 {
		return nil, nil, 0, false // b == 0 degenerates to a simple power, handled by normalization already
	}
	bRoot, bExact := nthRoot(new(big.Int).Abs(p.Coeff(0)), int64(deg))
	if !bExact {
		return nil, nil, 0, false
	}
	if p.Coeff(0).Sign() < 0 {
		bRoot = new(big.Int).Neg(bRoot)
	}

	candidate := expandBinomialPower(aRoot, bRoot, deg)
	if candidate.Equal(p) {
		return aRoot, bRoot, deg, true
	}
	negA := new(big.Int).Neg(aRoot)
	candidate = expandBinomialPower(negA, bRoot, deg)
	if candidate.Equal(p) {
		return negA, bRoot, deg, true
	}
	return nil, nil, 0, false
}

// expandBinomialPower computes (a x + b)^n as a dense Poly via repeated
// multiplication, for verification against the candidate polynomial.
func expandBinomialPower(a, b *big.Int, n int) Poly {
	linear := NewPoly([]*big.Int{new(big.Int).Set(b), new(big.Int).Set(a)})
	result := NewPoly([]*big.Int{big.NewInt(1)})
	for i := 0; i < n; i++ {
		result = result.Mul(linear)
	}
	return result
}
