package simplify

import (
	"sort"
	"strings"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/rational"
)

// term is the algebraic record used for like-term combination: a
// rational coefficient, a variable-name-to-integer-power multiset, and
// a residual list of subexpressions that do not decompose into
// coefficient/power shape.
type term struct {
	coeff    rational.Rational
	powers   map[string]int
	residual []ast.Expr
}

func newTerm() term {
	return term{coeff: rational.One, powers: map[string]int{}}
}

// analyzeTerm decomposes a multiplicative expression into a term record.
func analyzeTerm(e ast.Expr) term {
	t := newTerm()
	for _, factor := range flattenMul(e) {
		absorb(&t, factor, 1)
	}
	return t
}

// flattenMul unrolls a chain of Binary Mul nodes into its leaf factors,
// left to right.
func flattenMul(e ast.Expr) []ast.Expr {
	bin, ok := e.(*ast.Binary)
	if !ok || bin.Op != ast.OpMul {
		return []ast.Expr{e}
	}
	return append(flattenMul(bin.Left), flattenMul(bin.Right)...)
}

// absorb folds a single factor into t, raised to exponent sign (1 or -1,
// the latter used when a term is later divided rather than multiplied).
func absorb(t *term, factor ast.Expr, sign int) {
	switch f := factor.(type) {
	case *ast.Number:
		c := f.Value
		if sign < 0 {
			c, _ = rational.One.Div(c)
		}
		t.coeff = t.coeff.Mul(c)
	case *ast.Unary:
		if f.Op == ast.UnaryMinus {
			t.coeff = t.coeff.Neg()
			absorb(t, f.Operand, sign)
			return
		}
		absorb(t, f.Operand, sign)
	case *ast.Identifier:
		t.powers[f.Name] += sign
	case *ast.Binary:
		if f.Op == ast.OpPow {
			if base, ok := f.Left.(*ast.Identifier); ok {
				if exp, ok := f.Right.(*ast.Number); ok && exp.Value.IsInteger() {
					n := exp.Value.Num()
					if n.IsInt64() {
						t.powers[base.Name] += sign * int(n.Int64())
						return
					}
				}
			}
		}
		t.residual = append(t.residual, factor)
	default:
		t.residual = append(t.residual, factor)
	}
}

// key returns the like-term bucket key: equal variable multisets and
// structurally equal (canonically ordered) residual lists.
func (t term) key() string {
	varNames := make([]string, 0, len(t.powers))
	for name, p := range t.powers {
		if p != 0 {
			varNames = append(varNames, name)
		}
	}
	sort.Strings(varNames)
	var b strings.Builder
	for _, name := range varNames {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(rational.FromInt64(int64(t.powers[name])).String())
		b.WriteByte(';')
	}
	rendered := make([]string, len(t.residual))
	for i, r := range t.residual {
		rendered[i] = ast.Render(r)
	}
	sort.Strings(rendered)
	for _, r := range rendered {
		b.WriteString("|")
		b.WriteString(r)
	}
	return b.String()
}

// toExpr rebuilds the canonical product coeff * vars^powers * residuals,
// in ascending alphabetical variable order, for stable output.
func (t term) toExpr() ast.Expr {
	varNames := make([]string, 0, len(t.powers))
	for name, p := range t.powers {
		if p != 0 {
			varNames = append(varNames, name)
		}
	}
	sort.Strings(varNames)

	factors := make([]ast.Expr, 0, len(varNames)+len(t.residual)+1)
	if !t.coeff.Equal(rational.One) || (len(varNames) == 0 && len(t.residual) == 0) {
		factors = append(factors, &ast.Number{Value: t.coeff.Abs()})
	}
	for _, name := range varNames {
		p := t.powers[name]
		ident := ast.Expr(&ast.Identifier{Name: name})
		if p == 1 {
			factors = append(factors, ident)
		} else {
			factors = append(factors, &ast.Binary{Op: ast.OpPow, Left: ident, Right: &ast.Number{Value: rational.FromInt64(int64(p))}})
		}
	}
	factors = append(factors, t.residual...)

	var expr ast.Expr
	for _, f := range factors {
		if expr == nil {
			expr = f
			continue
		}
		expr = &ast.Binary{Op: ast.OpMul, Left: expr, Right: f}
	}
	if expr == nil {
		expr = &ast.Number{Value: rational.Zero}
	}
	if t.coeff.Sign() < 0 {
		return &ast.Unary{Op: ast.UnaryMinus, Operand: expr}
	}
	return expr
}

// complexity is a stable sort weight: fewer nodes and a shorter rendered
// form sort first, as an ascending-complexity tie-break.
func (t term) complexity() (int, string) {
	e := t.toExpr()
	return ast.NodeCount(e), ast.Render(e)
}
