package parser

import (
	"testing"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) ast.Expr {
	t.Helper()
	expr, err := New().Parse(input)
	require.NoError(t, err, "input: %s", input)
	return expr
}

func TestParsePrecedence(t *testing.T) {
	expr := parse(t, "a + b * c")
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, bin.Op)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseGrouping(t *testing.T) {
	expr := parse(t, "(a + b) * c")
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpMul, bin.Op)
	lhs := bin.Left.(*ast.Binary)
	assert.Equal(t, ast.OpAdd, lhs.Op)
}

func TestParseExponentRightAssociative(t *testing.T) {
	expr := parse(t, "x^y^2")
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpPow, bin.Op)
	assert.Equal(t, "x", bin.Left.(*ast.Identifier).Name)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, ast.OpPow, rhs.Op)
}

func TestParseImplicitMultiplication(t *testing.T) {
	expr := parse(t, "2x")
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpMul, bin.Op)
	assert.True(t, bin.Left.(*ast.Number).Value.Equal(bin.Left.(*ast.Number).Value))
}

func TestParseFracAndDivisionBothYieldFraction(t *testing.T) {
	frac := parse(t, `\frac{a}{b}`)
	_, ok := frac.(*ast.Fraction)
	assert.True(t, ok)

	div := parse(t, "a / b")
	_, ok = div.(*ast.Fraction)
	assert.True(t, ok)
}

func TestParseSqrtWithAndWithoutIndex(t *testing.T) {
	plain := parse(t, `\sqrt{x}`).(*ast.FuncCall)
	assert.Equal(t, "sqrt", plain.Name)
	assert.Len(t, plain.Args, 1)

	indexed := parse(t, `\sqrt[3]{x}`).(*ast.FuncCall)
	assert.Equal(t, "sqrt", indexed.Name)
	assert.Len(t, indexed.Args, 2)
}

func TestParseIntegralDefiniteAndIndefinite(t *testing.T) {
	indefinite := parse(t, `\int x dx`).(*ast.Integral)
	assert.Equal(t, "x", indefinite.Var)
	assert.Nil(t, indefinite.Lower)
	assert.Nil(t, indefinite.Upper)

	definite := parse(t, `\int_{0}^{1} x dx`).(*ast.Integral)
	assert.Equal(t, "x", definite.Var)
	require.NotNil(t, definite.Lower)
	require.NotNil(t, definite.Upper)
}

func TestParseSumAndProduct(t *testing.T) {
	sum := parse(t, `\sum_{j=1}^{n} j`).(*ast.Sum)
	assert.Equal(t, "j", sum.Var)

	prod := parse(t, `\prod_{k=1}^{n} k`).(*ast.Product)
	assert.Equal(t, "k", prod.Var)
}

func TestParseReservedNameRejected(t *testing.T) {
	_, err := New().Parse("sin + 1")
	assert.Error(t, err)
}

func TestParseGreekLetter(t *testing.T) {
	expr := parse(t, `\alpha + 1`)
	bin := expr.(*ast.Binary)
	ident := bin.Left.(*ast.Identifier)
	assert.Equal(t, "alpha", ident.Name)
}

func TestParseRelationalOperators(t *testing.T) {
	expr := parse(t, "x <= 5")
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpLe, bin.Op)
}

func TestParseCdot(t *testing.T) {
	expr := parse(t, `2 \cdot x`)
	bin := expr.(*ast.Binary)
	assert.Equal(t, ast.OpMul, bin.Op)
}

func TestParseFunctionCall(t *testing.T) {
	expr := parse(t, `\sin{x}`).(*ast.FuncCall)
	assert.Equal(t, "sin", expr.Name)
	assert.Len(t, expr.Args, 1)
}

func TestParseFunctionCallParenthesized(t *testing.T) {
	expr := parse(t, `\cos(x)`).(*ast.FuncCall)
	assert.Equal(t, "cos", expr.Name)
	assert.Len(t, expr.Args, 1)
	assert.Equal(t, "x", expr.Args[0].(*ast.Identifier).Name)
}

func TestParseFunctionCallRoundTripsThroughRender(t *testing.T) {
	// ast.Render prints named function calls as \name(arg); re-parsing
	// that output must produce the same FuncCall, not a syntax error.
	rendered := ast.Render(parse(t, `\sin{x}`))
	reparsed := parse(t, rendered).(*ast.FuncCall)
	assert.Equal(t, "sin", reparsed.Name)
	assert.Len(t, reparsed.Args, 1)
}

func TestParseUnmatchedParenIsSyntaxError(t *testing.T) {
	_, err := New().Parse("(a + b")
	assert.Error(t, err)
}
