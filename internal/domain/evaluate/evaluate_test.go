package evaluate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/evaluate"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

func num(n int64) *ast.Number { return &ast.Number{Value: rational.FromInt64(n)} }

func TestEvaluate_ExactArithmeticStaysExact(t *testing.T) {
	// (1/2) + (1/2) = 1, exactly
	frac := &ast.Fraction{Num: num(1), Den: num(2)}
	expr := &ast.Binary{Op: ast.OpAdd, Left: frac, Right: &ast.Fraction{Num: num(1), Den: num(2)}}

	result, err := evaluate.Evaluate(expr, nil)
	require.NoError(t, err)
	assert.True(t, result.IsExact)
	assert.Equal(t, "1", result.Exact.String())
}

func TestEvaluate_FreeVariableSubstitution(t *testing.T) {
	expr := &ast.Binary{Op: ast.OpAdd, Left: &ast.Identifier{Name: "x"}, Right: num(1)}
	result, err := evaluate.Evaluate(expr, map[string]float64{"x": 4})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Approx)
	assert.False(t, result.IsExact)
}

func TestEvaluate_MissingFreeVariableIsScopeError(t *testing.T) {
	expr := &ast.Identifier{Name: "y"}
	_, err := evaluate.Evaluate(expr, nil)
	require.Error(t, err)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	expr := &ast.Fraction{Num: num(1), Den: num(0)}
	_, err := evaluate.Evaluate(expr, nil)
	require.Error(t, err)
}

func TestEvaluate_ExactSqrtOfPerfectSquare(t *testing.T) {
	expr := &ast.FuncCall{Name: "sqrt", Args: []ast.Expr{num(9)}, ExpectedArity: 1}
	result, err := evaluate.Evaluate(expr, nil)
	require.NoError(t, err)
	assert.True(t, result.IsExact)
	assert.Equal(t, "3", result.Exact.String())
}

func TestEvaluate_InexactSqrtDegradesToApprox(t *testing.T) {
	expr := &ast.FuncCall{Name: "sqrt", Args: []ast.Expr{num(2)}, ExpectedArity: 1}
	result, err := evaluate.Evaluate(expr, nil)
	require.NoError(t, err)
	assert.False(t, result.IsExact)
	assert.InDelta(t, 1.41421356, result.Approx, 1e-6)
}

func TestEvaluate_TranscendentalFunctionsAreApproximate(t *testing.T) {
	pi := &ast.Identifier{Name: "pi"}
	expr := &ast.FuncCall{Name: "sin", Args: []ast.Expr{pi}, ExpectedArity: 1}
	result, err := evaluate.Evaluate(expr, nil)
	require.NoError(t, err)
	assert.False(t, result.IsExact)
	assert.InDelta(t, 0, result.Approx, 1e-9)
}

func TestEvaluate_LnVersusLog(t *testing.T) {
	e := &ast.Identifier{Name: "e"}
	lnResult, err := evaluate.Evaluate(&ast.FuncCall{Name: "ln", Args: []ast.Expr{e}, ExpectedArity: 1}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, lnResult.Approx, 1e-9)

	logResult, err := evaluate.Evaluate(&ast.FuncCall{Name: "log", Args: []ast.Expr{num(100)}, ExpectedArity: 1}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, logResult.Approx, 1e-9)
}

func TestEvaluate_SumFoldsOverIntegerBounds(t *testing.T) {
	// sum_{i=1}^{4} i = 10
	sum := &ast.Sum{
		Var:   "i",
		Lower: num(1),
		Upper: num(4),
		Body:  &ast.Identifier{Name: "i"},
	}
	result, err := evaluate.Evaluate(sum, nil)
	require.NoError(t, err)
	assert.True(t, result.IsExact)
	assert.Equal(t, "10", result.Exact.String())
}

func TestEvaluate_ProductFoldsOverIntegerBounds(t *testing.T) {
	// prod_{i=1}^{4} i = 24
	prod := &ast.Product{
		Var:   "i",
		Lower: num(1),
		Upper: num(4),
		Body:  &ast.Identifier{Name: "i"},
	}
	result, err := evaluate.Evaluate(prod, nil)
	require.NoError(t, err)
	assert.True(t, result.IsExact)
	assert.Equal(t, "24", result.Exact.String())
}

func TestEvaluate_IntegralIsOutOfScope(t *testing.T) {
	integral := &ast.Integral{
		Var:       "x",
		Lower:     num(0),
		Upper:     num(1),
		Integrand: &ast.Identifier{Name: "x"},
	}
	_, err := evaluate.Evaluate(integral, nil)
	require.Error(t, err)
}
