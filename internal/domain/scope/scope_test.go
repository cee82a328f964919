package scope

import (
	"testing"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(n int64) *ast.Number { return &ast.Number{Value: rational.FromInt64(n)} }

func TestFreeIdentifierSharesID(t *testing.T) {
	expr := &ast.Binary{Op: ast.OpAdd, Left: &ast.Identifier{Name: "x"}, Right: &ast.Identifier{Name: "x"}}
	resolved := NewResolver().Resolve(expr).(*ast.Binary)

	left := resolved.Left.(*ast.Identifier)
	right := resolved.Right.(*ast.Identifier)
	assert.Equal(t, ast.ScopeFree, left.Scope)
	assert.Equal(t, left.ID, right.ID)
}

func TestBoundIdentifierInsideSum(t *testing.T) {
	sum := &ast.Sum{
		Var:   "i",
		Lower: num(1),
		Upper: &ast.Identifier{Name: "n"},
		Body:  &ast.Identifier{Name: "i"},
	}
	resolved := NewResolver().Resolve(sum).(*ast.Sum)

	body := resolved.Body.(*ast.Identifier)
	assert.Equal(t, ast.ScopeBound, body.Scope)
	assert.Equal(t, 1, body.Depth)
	assert.Equal(t, ast.ContextSum, body.Context)

	// The upper bound "n" is resolved in the OUTER scope and remains free.
	upper := resolved.Upper.(*ast.Identifier)
	assert.Equal(t, ast.ScopeFree, upper.Scope)
}

func TestShadowingAtDifferentDepthsGetsDistinctIDs(t *testing.T) {
	// \sum_{i=1}^{n} \sum_{i=1}^{i} i   -- inner "i" shadows outer "i"
	inner := &ast.Sum{Var: "i", Lower: num(1), Upper: &ast.Identifier{Name: "i"}, Body: &ast.Identifier{Name: "i"}}
	outer := &ast.Sum{Var: "i", Lower: num(1), Upper: &ast.Identifier{Name: "n"}, Body: inner}

	resolved := NewResolver().Resolve(outer).(*ast.Sum)
	resolvedInner := resolved.Body.(*ast.Sum)
	innerBody := resolvedInner.Body.(*ast.Identifier)
	// The inner sum's own upper bound "i" refers to the OUTER binder (depth 1).
	innerUpper := resolvedInner.Upper.(*ast.Identifier)

	require.Equal(t, ast.ScopeBound, innerBody.Scope)
	require.Equal(t, ast.ScopeBound, innerUpper.Scope)
	assert.Equal(t, 2, innerBody.Depth)
	assert.Equal(t, 1, innerUpper.Depth)
	assert.NotEqual(t, innerBody.ID, innerUpper.ID, "shadowed binders at different depths must have distinct unique ids")
}
