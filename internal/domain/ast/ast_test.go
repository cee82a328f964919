package ast

import (
	"testing"

	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
	"github.com/stretchr/testify/assert"
)

func num(n int64) *Number { return &Number{Value: rational.FromInt64(n)} }
func ident(name string) *Identifier { return &Identifier{Name: name} }

func TestCloneIsDeep(t *testing.T) {
	original := &Binary{Op: OpAdd, Left: ident("x"), Right: num(1)}
	cloned := Clone(original).(*Binary)

	assert.True(t, Equal(original, cloned))

	cloned.Left.(*Identifier).Name = "y"
	assert.Equal(t, "x", original.Left.(*Identifier).Name, "mutating the clone must not affect the original")
}

func TestEqualStructural(t *testing.T) {
	a := &Binary{Op: OpMul, Left: num(2), Right: ident("x")}
	b := &Binary{Op: OpMul, Left: num(2), Right: ident("x")}
	c := &Binary{Op: OpMul, Left: ident("x"), Right: num(2)}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c), "operand order is not ignored by strict structural equality")
}

func TestRenderBasics(t *testing.T) {
	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"integer", num(3), "3"},
		{"identifier", ident("x"), "x"},
		{"pi constant", ident("pi"), "\\pi"},
		{"addition", &Binary{Op: OpAdd, Left: ident("x"), Right: num(1)}, "x + 1"},
		{
			"precedence requires parens",
			&Binary{Op: OpMul, Left: &Binary{Op: OpAdd, Left: ident("x"), Right: num(1)}, Right: num(2)},
			"(x + 1) 2",
		},
		{
			"exponent braces",
			&Binary{Op: OpPow, Left: ident("x"), Right: num(2)},
			"x^{2}",
		},
		{
			"right-associative power nesting",
			&Binary{Op: OpPow, Left: ident("x"), Right: &Binary{Op: OpPow, Left: ident("y"), Right: num(2)}},
			"x^{y^{2}}",
		},
		{
			"fraction",
			&Fraction{Num: ident("a"), Den: ident("b")},
			"\\frac{a}{b}",
		},
		{
			"division renders as frac",
			&Binary{Op: OpDiv, Left: ident("a"), Right: ident("b")},
			"\\frac{a}{b}",
		},
		{
			"function call",
			&FuncCall{Name: "sin", Args: []Expr{ident("x")}},
			"\\sin(x)",
		},
		{
			"sqrt without index",
			&FuncCall{Name: "sqrt", Args: []Expr{ident("x")}},
			"\\sqrt{x}",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.expr))
		})
	}
}

func TestRenderIntegralOmitsAbsentBounds(t *testing.T) {
	indefinite := &Integral{Integrand: ident("x"), Var: "x"}
	assert.Equal(t, "\\int x \\, dx", Render(indefinite))

	definite := &Integral{Integrand: ident("x"), Var: "x", Lower: num(0), Upper: num(1)}
	assert.Equal(t, "\\int_{0}^{1} x \\, dx", Render(definite))
}

func TestFreeVariablesExcludesBound(t *testing.T) {
	body := &Binary{Op: OpAdd, Left: &Identifier{Name: "i", Scope: ScopeBound, ID: "i#1"}, Right: ident("n")}
	sum := &Sum{Var: "i", Lower: num(1), Upper: ident("n"), Body: body}

	free := FreeVariables(sum)
	assert.Equal(t, []string{"n"}, free)
}

func TestInferVariablePriority(t *testing.T) {
	expr := &Binary{Op: OpAdd, Left: ident("z"), Right: ident("x")}
	v, ok := InferVariable(expr)
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	onlyAlpha := &Binary{Op: OpAdd, Left: ident("a"), Right: ident("b")}
	v, ok = InferVariable(onlyAlpha)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestIsReservedName(t *testing.T) {
	assert.True(t, IsReservedName("pi"))
	assert.True(t, IsReservedName("sin"))
	assert.True(t, IsReservedName("infty"))
	assert.False(t, IsReservedName("x"))
}
