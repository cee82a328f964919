package factor_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/evaluate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

func intNum(n int64) *ast.Number { return &ast.Number{Value: rational.FromInt64(n)} }

func mul(a, b ast.Expr) ast.Expr { return &ast.Binary{Op: ast.OpMul, Left: a, Right: b} }
func add(a, b ast.Expr) ast.Expr { return &ast.Binary{Op: ast.OpAdd, Left: a, Right: b} }
func sub(a, b ast.Expr) ast.Expr { return &ast.Binary{Op: ast.OpSub, Left: a, Right: b} }
func pow(a ast.Expr, n int64) ast.Expr { return &ast.Binary{Op: ast.OpPow, Left: a, Right: intNum(n)} }

func x() ast.Expr { return &ast.Identifier{Name: "x"} }

// evalAt checks that expr evaluates to want at x=at, used throughout this
// file to confirm a factorization preserves the original function rather
// than asserting on one specific rendered shape.
func evalAt(t *testing.T, expr ast.Expr, at, want float64) {
	t.Helper()
	got, err := evaluate.Evaluate(expr, map[string]float64{"x": at})
	require.NoError(t, err)
	assert.InDelta(t, want, got.Approx, 1e-9, "at x=%v", at)
}

func TestFactor_CommonFactor(t *testing.T) {
	// 2x^2 + 4x = 2x(x+2)
	expr := add(mul(intNum(2), pow(x(), 2)), mul(intNum(4), x()))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-3, 0, 1, 5} {
		want := 2*at*at + 4*at
		evalAt(t, result, at, want)
	}

	product, ok := result.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, product.Op)
}

func TestFactor_DifferenceOfSquares(t *testing.T) {
	// x^2 - 9 = (x-3)(x+3)
	expr := sub(pow(x(), 2), intNum(9))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-4, -3, 0, 3, 7} {
		evalAt(t, result, at, at*at-9)
	}
}

func TestFactor_Quadratic(t *testing.T) {
	// x^2 + 5x + 6 = (x+2)(x+3)
	expr := add(add(pow(x(), 2), mul(intNum(5), x())), intNum(6))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-5, -3, -2, 0, 4} {
		evalAt(t, result, at, at*at+5*at+6)
	}
}

func TestFactor_QuadraticIrreducibleIsUnchanged(t *testing.T) {
	// x^2 + x + 1 has no integer root pair summing correctly; the driver
	// must leave it function-equivalent even with no strategy succeeding.
	expr := add(add(pow(x(), 2), x()), intNum(1))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-3, -1, 0, 1, 3} {
		evalAt(t, result, at, at*at+at+1)
	}
}

func TestFactor_Grouping(t *testing.T) {
	// 2x^3 + 2x^2 + 3x + 3 = (2x^2+3)(x+1), reached via grouping: no
	// single monomial factor divides all four terms (gcd(2,2,3,3)=1 and
	// the constant term rules out a shared variable power), but each
	// contiguous pair (2x^3+2x^2) and (3x+3) factors to a shared (x+1).
	expr := add(add(add(mul(intNum(2), pow(x(), 3)), mul(intNum(2), pow(x(), 2))), mul(intNum(3), x())), intNum(3))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-3, -1, 0, 1, 2, 4} {
		want := 2*at*at*at + 2*at*at + 3*at + 3
		evalAt(t, result, at, want)
	}
}

func TestFactor_PerfectPowerCube(t *testing.T) {
	// x^3 + 3x^2 + 3x + 1 = (x+1)^3
	expr := add(add(add(pow(x(), 3), mul(intNum(3), pow(x(), 2))), mul(intNum(3), x())), intNum(1))
	result, _ := factor.Factor(expr)

	for _, at := range []float64{-3, -1, 0, 1, 2, 5} {
		want := (at + 1) * (at + 1) * (at + 1)
		evalAt(t, result, at, want)
	}
}

func TestFactor_CanApplyGates(t *testing.T) {
	common := factor.CommonFactorStrategy{}
	assert.True(t, common.CanApply(add(mul(intNum(2), x()), intNum(4)), factor.Context{}))
	assert.False(t, common.CanApply(x(), factor.Context{}))

	diffSq := factor.DifferenceOfSquaresStrategy{}
	assert.True(t, diffSq.CanApply(sub(pow(x(), 2), intNum(4)), factor.Context{}))
	assert.False(t, diffSq.CanApply(add(pow(x(), 2), intNum(4)), factor.Context{}))

	grouping := factor.GroupingStrategy{}
	threeTerms := add(add(x(), intNum(1)), intNum(2))
	assert.False(t, grouping.CanApply(threeTerms, factor.Context{}))
}

func TestFactor_GcdOfCoefficientsExtracted(t *testing.T) {
	// 6x + 9 = 3(2x+3); the common-factor strategy must pick gcd(6,9)=3,
	// not just any shared divisor.
	expr := add(mul(intNum(6), x()), intNum(9))
	result, _ := factor.Factor(expr)

	product, ok := result.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, product.Op)

	coeffNode, ok := product.Left.(*ast.Number)
	require.True(t, ok, "expected a numeric common factor on the left")
	gcd := new(big.Int).SetInt64(3)
	assert.Equal(t, 0, coeffNode.Value.Num().Cmp(gcd))
}
