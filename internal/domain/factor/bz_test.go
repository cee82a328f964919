package factor_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/evaluate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor"
)

func bigCoeffs(cs ...int64) []*big.Int {
	out := make([]*big.Int, len(cs))
	for i, c := range cs {
		out[i] = big.NewInt(c)
	}
	return out
}

// evalPoly evaluates p at x using plain int64 arithmetic, sufficient for
// the small test polynomials below.
func evalPoly(p factor.Poly, x int64) int64 {
	var acc int64
	pow := int64(1)
	for i := 0; i <= p.Degree(); i++ {
		acc += p.Coeff(i).Int64() * pow
		pow *= x
	}
	return acc
}

// assertSameFunction checks that the factored AST agrees with the
// original polynomial at several sample points, which is enough to
// catch a wrong factorization without requiring FromAST to be able to
// re-flatten a product of binomials (it only reads sums of monomials).
func assertSameFunction(t *testing.T, p factor.Poly, factored ast.Expr, points []int64) {
	t.Helper()
	for _, x := range points {
		want := evalPoly(p, x)
		got, err := evaluate.Evaluate(factored, map[string]float64{"x": float64(x)})
		require.NoError(t, err)
		assert.InDelta(t, float64(want), got.Approx, 1e-6, "mismatch at x=%d", x)
	}
}

func TestBerlekampZassenhaus_MonicQuartic(t *testing.T) {
	// x^4 - 5x^2 + 4 = (x-1)(x+1)(x-2)(x+2)
	p := factor.NewPoly(bigCoeffs(4, 0, -5, 0, 1))
	expr := factor.ToAST(p, "x")

	result, _ := factor.Factor(expr)
	require.NotNil(t, result)

	assertSameFunction(t, p, result, []int64{-3, -2, -1, 0, 1, 2, 3, 5})
}

func TestBerlekampZassenhaus_CoprimeExponents(t *testing.T) {
	// x^3 - 6x^2 + 11x - 6 = (x-1)(x-2)(x-3). Exponents 0,1,2,3 share no
	// common factor, so PowerSubstitutionStrategy cannot apply (k=1) and
	// this actually exercises BerlekampZassenhausStrategy.Apply, unlike
	// the quartic case above which the k=2 substitution path resolves
	// first.
	p := factor.NewPoly(bigCoeffs(-6, 11, -6, 1))
	expr := factor.ToAST(p, "x")

	result, _ := factor.Factor(expr)
	assertSameFunction(t, p, result, []int64{-2, -1, 0, 1, 2, 3, 4, 5})
}

func TestBerlekampZassenhaus_NonMonic(t *testing.T) {
	// 2x^2 - 3x + 1 = (2x-1)(x-1). Degree 2 is below
	// BerlekampZassenhausStrategy's degree-3 minimum, so the non-monic
	// split comes from QuadraticStrategy.
	p := factor.NewPoly(bigCoeffs(1, -3, 2))
	expr := factor.ToAST(p, "x")

	result, _ := factor.Factor(expr)
	assertSameFunction(t, p, result, []int64{-2, -1, 0, 1, 2, 3})
}

func TestBerlekampZassenhaus_Irreducible(t *testing.T) {
	// x^2 + 1 has no real or rational roots; the engine must not
	// corrupt it even though no strategy can split it.
	p := factor.NewPoly(bigCoeffs(1, 0, 1))
	expr := factor.ToAST(p, "x")

	result, _ := factor.Factor(expr)
	assertSameFunction(t, p, result, []int64{-3, -1, 0, 1, 3})
}

func TestBerlekampZassenhausStrategy_CanApply(t *testing.T) {
	strat := factor.BerlekampZassenhausStrategy{}
	p := factor.NewPoly(bigCoeffs(4, 0, -5, 0, 1))
	expr := factor.ToAST(p, "x")
	assert.True(t, strat.CanApply(expr, factor.Context{}))

	notPoly := &ast.FuncCall{Name: "sin", Args: []ast.Expr{&ast.Identifier{Name: "x"}}, ExpectedArity: 1}
	assert.False(t, strat.CanApply(notPoly, factor.Context{}))
}
