// Package factor implements the factorization engine: a priority-ordered
// strategy registry over a single-variable dense polynomial
// representation, bridging to and from the AST. The dense
// coefficient-vector representation and the content/primitive-part
// split follow the same big.Int-backed numeric-core idiom used
// throughout this module's exact arithmetic.
package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
)

// Poly is a dense univariate polynomial over the integers, coefficients
// ordered constant-first (Coeffs[i] is the coefficient of x^i).
type Poly struct {
	Coeffs []*big.Int
}

// NewPoly builds a Poly from big.Int coefficients, trimming trailing
// zero (highest-degree) terms.
func NewPoly(coeffs []*big.Int) Poly {
	return Poly{Coeffs: coeffs}.Trim()
}

// Trim drops trailing zero coefficients so Degree reflects the true
// leading term; a zero polynomial is represented with Coeffs == nil.
func (p Poly) Trim() Poly {
	n := len(p.Coeffs)
	for n > 0 && p.Coeffs[n-1].Sign() == 0 {
		n--
	}
	return Poly{Coeffs: append([]*big.Int(nil), p.Coeffs[:n]...)}
}

// Degree returns the polynomial's degree, or -1 for the zero polynomial.
func (p Poly) Degree() int { return len(p.Coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool { return len(p.Coeffs) == 0 }

// Coeff returns the coefficient of x^i, or zero when i is out of range.
func (p Poly) Coeff(i int) *big.Int {
	if i < 0 || i >= len(p.Coeffs) {
		return big.NewInt(0)
	}
	return p.Coeffs[i]
}

// Leading returns the leading (highest-degree) coefficient.
func (p Poly) Leading() *big.Int { return p.Coeff(p.Degree()) }

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly {
	out := make([]*big.Int, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = new(big.Int).Set(c)
	}
	return Poly{Coeffs: out}
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int).Add(p.Coeff(i), q.Coeff(i))
	}
	return NewPoly(out)
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	n := len(p.Coeffs)
	if len(q.Coeffs) > n {
		n = len(q.Coeffs)
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		out[i] = new(big.Int).Sub(p.Coeff(i), q.Coeff(i))
	}
	return NewPoly(out)
}

// Scale returns p scaled by a constant integer factor.
func (p Poly) Scale(k *big.Int) Poly {
	out := make([]*big.Int, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = new(big.Int).Mul(c, k)
	}
	return NewPoly(out)
}

// Neg returns -p.
func (p Poly) Neg() Poly { return p.Scale(big.NewInt(-1)) }

// Mul returns p * q by convolution.
func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return Poly{}
	}
	out := make([]*big.Int, len(p.Coeffs)+len(q.Coeffs)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, a := range p.Coeffs {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q.Coeffs {
			out[i+j].Add(out[i+j], new(big.Int).Mul(a, b))
		}
	}
	return NewPoly(out)
}

// Equal reports exact coefficient-wise equality after trimming.
func (p Poly) Equal(q Poly) bool {
	pt, qt := p.Trim(), q.Trim()
	if len(pt.Coeffs) != len(qt.Coeffs) {
		return false
	}
	for i := range pt.Coeffs {
		if pt.Coeffs[i].Cmp(qt.Coeffs[i]) != 0 {
			return false
		}
	}
	return true
}

// Content is the gcd of all coefficients (0 for the zero polynomial).
func (p Poly) Content() *big.Int {
	g := big.NewInt(0)
	for _, c := range p.Coeffs {
		g = new(big.Int).GCD(nil, nil, g, new(big.Int).Abs(c))
	}
	return g
}

// Primitive divides out the content, returning the primitive part; the
// sign is normalized so the leading coefficient is positive.
func (p Poly) Primitive() Poly {
	c := p.Content()
	if c.Sign() == 0 {
		return p
	}
	out := make([]*big.Int, len(p.Coeffs))
	for i, v := range p.Coeffs {
		q := new(big.Int)
		q.Div(v, c)
		out[i] = q
	}
	prim := NewPoly(out)
	if prim.Leading().Sign() < 0 {
		prim = prim.Neg()
	}
	return prim
}

// FromAST reads a dense integer coefficient vector for variable name out
// of a purely-polynomial expression tree (sums of coeff*name^k terms
// with integer exponents and integer coefficients). ok is false when the
// expression is not representable this way (fractional coefficients,
// other variables, transcendental subterms).
func FromAST(expr ast.Expr, name string) (Poly, bool) {
	terms := map[int]*big.Int{}
	if !collectTerms(expr, name, big.NewInt(1), terms) {
		return Poly{}, false
	}
	maxDeg := -1
	for d := range terms {
		if d > maxDeg {
			maxDeg = d
		}
	}
	if maxDeg < 0 {
		return NewPoly(nil), true
	}
	out := make([]*big.Int, maxDeg+1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for d, c := range terms {
		out[d] = c
	}
	return NewPoly(out), true
}

func collectTerms(e ast.Expr, name string, sign *big.Int, terms map[int]*big.Int) bool {
	switch x := e.(type) {
	case *ast.Binary:
		switch x.Op {
		case ast.OpAdd:
			return collectTerms(x.Left, name, sign, terms) && collectTerms(x.Right, name, sign, terms)
		case ast.OpSub:
			return collectTerms(x.Left, name, sign, terms) && collectTerms(x.Right, name, new(big.Int).Neg(sign), terms)
		}
	case *ast.Unary:
		if x.Op == ast.UnaryMinus {
			return collectTerms(x.Operand, name, new(big.Int).Neg(sign), terms)
		}
		return collectTerms(x.Operand, name, sign, terms)
	}
	deg, coeff, ok := monomial(e, name)
	if !ok {
		return false
	}
	c := new(big.Int).Mul(coeff, sign)
	if existing, found := terms[deg]; found {
		terms[deg] = new(big.Int).Add(existing, c)
	} else {
		terms[deg] = c
	}
	return true
}

// monomial recognizes coeff * name^deg (in any factor order, deg >= 0
// integer, coeff an integer Number) and returns its degree/coefficient.
func monomial(e ast.Expr, name string) (deg int, coeff *big.Int, ok bool) {
	factors := flattenMulFactor(e)
	deg = 0
	coeff = big.NewInt(1)
	for _, f := range factors {
		switch v := f.(type) {
		case *ast.Number:
			if !v.Value.IsInteger() {
				return 0, nil, false
			}
			coeff = new(big.Int).Mul(coeff, v.Value.Num())
		case *ast.Identifier:
			if v.Name != name {
				return 0, nil, false
			}
			deg++
		case *ast.Binary:
			if v.Op != ast.OpPow {
				return 0, nil, false
			}
			base, baseOk := v.Left.(*ast.Identifier)
			exp, expOk := v.Right.(*ast.Number)
			if !baseOk || !expOk || base.Name != name || !exp.Value.IsInteger() || exp.Value.Sign() < 0 {
				return 0, nil, false
			}
			deg += int(exp.Value.Num().Int64())
		default:
			return 0, nil, false
		}
	}
	return deg, coeff, true
}

func flattenMulFactor(e ast.Expr) []ast.Expr {
	bin, ok := e.(*ast.Binary)
	if !ok || bin.Op != ast.OpMul {
		return []ast.Expr{e}
	}
	return append(flattenMulFactor(bin.Left), flattenMulFactor(bin.Right)...)
}

// ToAST rebuilds a polynomial as an AST expression in variable name,
// highest degree first, matching the engine's customary display order.
func ToAST(p Poly, name string) ast.Expr {
	if p.IsZero() {
		return &ast.Number{Value: zeroRat()}
	}
	var expr ast.Expr
	for d := p.Degree(); d >= 0; d-- {
		c := p.Coeff(d)
		if c.Sign() == 0 {
			continue
		}
		term := monomialAST(c, name, d)
		if expr == nil {
			expr = term
			continue
		}
		if c.Sign() < 0 {
			expr = &ast.Binary{Op: ast.OpSub, Left: expr, Right: monomialAST(new(big.Int).Neg(c), name, d)}
		} else {
			expr = &ast.Binary{Op: ast.OpAdd, Left: expr, Right: term}
		}
	}
	return expr
}

func monomialAST(c *big.Int, name string, degree int) ast.Expr {
	var varPart ast.Expr
	switch degree {
	case 0:
		varPart = nil
	case 1:
		varPart = &ast.Identifier{Name: name}
	default:
		varPart = &ast.Binary{Op: ast.OpPow, Left: &ast.Identifier{Name: name}, Right: intNode(int64(degree))}
	}
	absC := new(big.Int).Abs(c)
	oneMagnitude := absC.Cmp(big.NewInt(1)) == 0
	if varPart == nil {
		return intNodeBig(c)
	}
	if oneMagnitude {
		return varPart
	}
	return &ast.Binary{Op: ast.OpMul, Left: intNodeBig(absC), Right: varPart}
}
