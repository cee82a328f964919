package differentiate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/differentiate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/evaluate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

func num(n int64) *ast.Number { return &ast.Number{Value: rational.FromInt64(n)} }

// derivativeAt differentiates expr w.r.t. variable and evaluates the
// result at the given point, used to check the derivative numerically
// rather than asserting on a specific rendered AST shape.
func derivativeAt(t *testing.T, expr ast.Expr, variable string, at float64) float64 {
	t.Helper()
	d, err := differentiate.Differentiate(expr, variable)
	require.NoError(t, err)
	result, err := evaluate.Evaluate(d, map[string]float64{variable: at})
	require.NoError(t, err)
	if result.IsExact {
		return result.Exact.Float64()
	}
	return result.Approx
}

func TestDifferentiate_PowerRule(t *testing.T) {
	// d(x^3)/dx = 3x^2; at x=2 -> 12
	expr := &ast.Binary{Op: ast.OpPow, Left: &ast.Identifier{Name: "x"}, Right: num(3)}
	got := derivativeAt(t, expr, "x", 2)
	assert.InDelta(t, 12.0, got, 1e-9)
}

func TestDifferentiate_ProductRule(t *testing.T) {
	// d(x * x)/dx = 2x; at x=5 -> 10
	expr := &ast.Binary{Op: ast.OpMul, Left: &ast.Identifier{Name: "x"}, Right: &ast.Identifier{Name: "x"}}
	got := derivativeAt(t, expr, "x", 5)
	assert.InDelta(t, 10.0, got, 1e-9)
}

func TestDifferentiate_QuotientRule(t *testing.T) {
	// d(x / (x+1))/dx = 1/(x+1)^2; at x=1 -> 1/4
	expr := &ast.Fraction{
		Num: &ast.Identifier{Name: "x"},
		Den: &ast.Binary{Op: ast.OpAdd, Left: &ast.Identifier{Name: "x"}, Right: num(1)},
	}
	got := derivativeAt(t, expr, "x", 1)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestDifferentiate_ChainRuleSin(t *testing.T) {
	// d(sin(2x))/dx = 2*cos(2x); at x=0 -> 2
	arg := &ast.Binary{Op: ast.OpMul, Left: num(2), Right: &ast.Identifier{Name: "x"}}
	expr := &ast.FuncCall{Name: "sin", Args: []ast.Expr{arg}, ExpectedArity: 1}
	got := derivativeAt(t, expr, "x", 0)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestDifferentiate_ExponentialBaseE(t *testing.T) {
	// d(e^x)/dx = e^x; at x=0 -> 1
	expr := &ast.Binary{Op: ast.OpPow, Left: &ast.Identifier{Name: "e"}, Right: &ast.Identifier{Name: "x"}}
	got := derivativeAt(t, expr, "x", 0)
	assert.InDelta(t, 1.0, got, 1e-9)
}

func TestDifferentiate_ConstantIsZero(t *testing.T) {
	got := derivativeAt(t, num(42), "x", 7)
	assert.Equal(t, 0.0, got)
}

func TestDifferentiate_SumOverFixedBounds(t *testing.T) {
	// d/dx sum_{i=1}^{3} (x*i) = sum_{i=1}^{3} i = 6
	sum := &ast.Sum{
		Var:   "i",
		Lower: num(1),
		Upper: num(3),
		Body:  &ast.Binary{Op: ast.OpMul, Left: &ast.Identifier{Name: "x"}, Right: &ast.Identifier{Name: "i"}},
	}
	got := derivativeAt(t, sum, "x", 0)
	assert.InDelta(t, 6.0, got, 1e-9)
}

func TestDifferentiate_AbsIsOutOfScope(t *testing.T) {
	expr := &ast.FuncCall{Name: "abs", Args: []ast.Expr{&ast.Identifier{Name: "x"}}, ExpectedArity: 1}
	_, err := differentiate.Differentiate(expr, "x")
	require.Error(t, err)
}

func TestDifferentiate_ProductNodeIsOutOfScope(t *testing.T) {
	prod := &ast.Product{
		Var:   "i",
		Lower: num(1),
		Upper: num(3),
		Body:  &ast.Identifier{Name: "i"},
	}
	_, err := differentiate.Differentiate(prod, "x")
	require.Error(t, err)
}
