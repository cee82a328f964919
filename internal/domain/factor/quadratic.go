package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// QuadraticStrategy: for a*x^2+b*x+c with
// integer coefficients, search integer factor pairs of a*c summing to b.
type QuadraticStrategy struct{}

func (QuadraticStrategy) Name() string { return "quadratic" }
func (QuadraticStrategy) Priority() int { return 80 }

func (QuadraticStrategy) CanApply(node ast.Expr, ctx Context) bool {
	_, _, ok := quadraticCoeffs(node)
	if !ok {
		return false
	}
	return !ctx.KnownIrreducibleKeys[ast.Render(node)]
}

func (QuadraticStrategy) Apply(node ast.Expr, ctx Context) Result {
	coeffs, varName, ok := quadraticCoeffs(node)
	if !ok {
		return Result{}
	}
	a, b, c := coeffs[0], coeffs[1], coeffs[2]

	ac := new(big.Int).Mul(a, c)
	p, q, found := findFactorPairSummingTo(ac, b)
	if !found {
		if ctx.KnownIrreducibleKeys != nil {
			ctx.KnownIrreducibleKeys[ast.Render(node)] = true
		}
		return Result{}
	}

	// a x^2 + b x + c, with p+q = b and p*q = a*c: split b*x into p*x+q*x,
	// group (a x^2 + p x) + (q x + c) = g1*x*(r1*x+s1) + g2*(r2*x+s2), and
	// succeed when both groups reduce to the same binomial.
	g1 := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(p))
	if g1.Sign() == 0 {
		g1 = big.NewInt(1)
	}
	r1 := new(big.Int).Quo(a, g1)
	s1 := new(big.Int).Quo(p, g1)

	g2 := new(big.Int).GCD(nil, nil, new(big.Int).Abs(q), new(big.Int).Abs(c))
	if g2.Sign() == 0 {
		g2 = big.NewInt(1)
	}
	r2 := new(big.Int).Quo(q, g2)
	s2 := new(big.Int).Quo(c, g2)

	if r1.Cmp(r2) != 0 || s1.Cmp(s2) != 0 {
		// The second group may reduce to the negated binomial:
		// q x + c = (-g2)*(r1*x+s1).
		if new(big.Int).Neg(r2).Cmp(r1) != 0 || new(big.Int).Neg(s2).Cmp(s1) != 0 {
			return Result{}
		}
		g2.Neg(g2)
	}

	fA := &ast.Binary{Op: ast.OpAdd, Left: scaledVar(g1, varName), Right: intNodeBig(g2)}
	fB := &ast.Binary{Op: ast.OpAdd, Left: scaledVar(r1, varName), Right: intNodeBig(s1)}
	product := &ast.Binary{Op: ast.OpMul, Left: fA, Right: fB}

	return Result{
		Success:     true,
		Changed:     true,
		AST:         product,
		Steps:       []trace.Step{trace.Text("quadratic factor pattern on " + varName)},
		CanContinue: true,
	}
}

func scaledVar(coeff *big.Int, varName string) ast.Expr {
	if coeff.Cmp(big.NewInt(1)) == 0 {
		return &ast.Identifier{Name: varName}
	}
	if coeff.Cmp(big.NewInt(-1)) == 0 {
		return &ast.Unary{Op: ast.UnaryMinus, Operand: &ast.Identifier{Name: varName}}
	}
	return &ast.Binary{Op: ast.OpMul, Left: intNodeBig(coeff), Right: &ast.Identifier{Name: varName}}
}

// quadraticCoeffs recognizes a univariate quadratic in exactly one
// variable with integer coefficients, returning [a, b, c] constant-last.
func quadraticCoeffs(node ast.Expr) ([]*big.Int, string, bool) {
	name, ok := ast.InferVariable(node)
	if !ok {
		return nil, "", false
	}
	p, ok := FromAST(node, name)
	if !ok || p.Degree() != 2 {
		return nil, "", false
	}
	return []*big.Int{p.Coeff(2), p.Coeff(1), p.Coeff(0)}, name, true
}

// findFactorPairSummingTo searches integer divisor pairs (p, q) of
// product with p+q == sum.
func findFactorPairSummingTo(product, sum *big.Int) (*big.Int, *big.Int, bool) {
	limit := new(big.Int).Abs(product)
	if limit.Sign() == 0 {
		if sum.Sign() == 0 {
			return big.NewInt(0), big.NewInt(0), true
		}
		return sum, big.NewInt(0), true
	}
	one := big.NewInt(1)
	for d := new(big.Int).Set(one); d.Cmp(limit) <= 0; d.Add(d, one) {
		if new(big.Int).Mod(limit, d).Sign() != 0 {
			continue
		}
		other := new(big.Int).Quo(limit, d)
		for _, signs := range [][2]int64{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}} {
			p := new(big.Int).Mul(d, big.NewInt(signs[0]))
			q := new(big.Int).Mul(other, big.NewInt(signs[1]))
			if new(big.Int).Mul(p, q).Cmp(product) != 0 {
				continue
			}
			if new(big.Int).Add(p, q).Cmp(sum) == 0 {
				return p, q, true
			}
		}
		if d.Cmp(big.NewInt(200000)) > 0 {
			break // resource guard: never search an unbounded divisor range
		}
	}
	return nil, nil, false
}
