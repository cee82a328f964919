package simplify

import (
	"testing"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/parser"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, in string) ast.Expr {
	t.Helper()
	e, err := parser.New().Parse(in)
	require.NoError(t, err, in)
	return e
}

func TestBasicIdentityRules(t *testing.T) {
	cases := []struct{ in, want string }{
		{"x + 0", "x"},
		{"x - 0", "x"},
		{"1 * x", "x"},
		{"x * 1", "x"},
		{"x * 0", "0"},
		{"x / 1", "x"},
		{"x^0", "1"},
		{"x^1", "x"},
	}
	for _, c := range cases {
		expr := mustParse(t, c.in)
		got, changed := Basic(expr)
		assert.True(t, changed, c.in)
		assert.Equal(t, c.want, ast.Render(got), c.in)
	}
}

func TestBasicNumericFolding(t *testing.T) {
	expr := mustParse(t, "2 + 3 * 4")
	got, changed := Basic(expr)
	assert.True(t, changed)
	assert.Equal(t, "14", ast.Render(got))
}

func TestBasicSignNormalization(t *testing.T) {
	expr := &ast.Binary{Op: ast.OpMul,
		Left:  &ast.Unary{Op: ast.UnaryMinus, Operand: &ast.Identifier{Name: "a"}},
		Right: &ast.Unary{Op: ast.UnaryMinus, Operand: &ast.Identifier{Name: "b"}},
	}
	got, changed := Basic(expr)
	assert.True(t, changed)
	assert.Equal(t, "a b", ast.Render(got))
}

func TestBasicFractionNormalization(t *testing.T) {
	expr := &ast.Fraction{Num: &ast.Number{Value: rational.FromInt64(4)}, Den: &ast.Number{Value: rational.FromInt64(2)}}
	got, changed := Basic(expr)
	assert.True(t, changed)
	assert.Equal(t, "2", ast.Render(got))
}

func TestCombineLikeTerms(t *testing.T) {
	expr := mustParse(t, "x + x")
	got, changed := Combine(expr)
	assert.True(t, changed)
	got, _ = Basic(got)
	assert.Equal(t, "2 x", ast.Render(got))
}

func TestCombineDistinctTermsUnaffected(t *testing.T) {
	expr := mustParse(t, "x + y")
	_, changed := Combine(expr)
	assert.False(t, changed)
}

func TestNormalizeSqrtBecomesPower(t *testing.T) {
	expr := mustParse(t, `\sqrt{x}`)
	got, changed := Normalize(expr)
	assert.True(t, changed)
	bin := got.(*ast.Binary)
	assert.Equal(t, ast.OpPow, bin.Op)
}

func TestNormalizePerfectCubeRoot(t *testing.T) {
	expr := mustParse(t, `\cbrt{8}`)
	got, changed := Normalize(expr)
	assert.True(t, changed)
	assert.Equal(t, "2", ast.Render(got))
}

func TestNormalizeExponentArithmeticSameBase(t *testing.T) {
	expr := mustParse(t, "x^2 * x^3")
	got, changed := Normalize(expr)
	assert.True(t, changed)
	got, _ = Basic(got)
	assert.Equal(t, "x^{5}", ast.Render(got))
}

func TestDistributeOverSum(t *testing.T) {
	expr := mustParse(t, "a * (b + c)")
	got, changed := Distribute(expr)
	assert.True(t, changed)
	got, _ = Combine(got)
	got, _ = Basic(got)
	assert.Equal(t, "a b + a c", ast.Render(got))
}

func TestSimplifyDriverReachesFixedPoint(t *testing.T) {
	expr := mustParse(t, "x + x + 0 * y")
	result, tree := Simplify(expr, Options{})
	assert.Equal(t, "2 x", ast.Render(result))
	assert.NotEmpty(t, tree)
}

func TestSimplifyDriverExpandOption(t *testing.T) {
	expr := mustParse(t, "(x + 1) * (x + 1)")
	result, _ := Simplify(expr, Options{Expand: true})
	assert.Contains(t, ast.Render(result), "x^{2}")
}
