package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor/modular"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// smallPrimes are the candidate Berlekamp-Zassenhaus working primes,
// tried in order until one leaves the leading coefficient non-vanishing
// and the reduction squarefree.
var smallPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// BerlekampZassenhausStrategy reduces mod a well-chosen prime, splits
// via the Berlekamp subalgebra basis, Hensel-lifts each finite-field
// factor to a precision exceeding Mignotte's bound, then recombines
// subsets of lifted factors into true integer factors.
type BerlekampZassenhausStrategy struct{}

func (BerlekampZassenhausStrategy) Name() string { return "berlekamp-zassenhaus" }
func (BerlekampZassenhausStrategy) Priority() int { return 40 }

func (BerlekampZassenhausStrategy) CanApply(node ast.Expr, _ Context) bool {
	name, ok := ast.InferVariable(node)
	if !ok {
		return false
	}
	poly, ok := FromAST(node, name)
	if !ok {
		return false
	}
	return poly.Degree() >= 3 && poly.Degree() <= MaxPolynomialDegree
}

func (BerlekampZassenhausStrategy) Apply(node ast.Expr, _ Context) Result {
	name, ok := ast.InferVariable(node)
	if !ok {
		return Result{}
	}
	poly, ok := FromAST(node, name)
	if !ok || poly.Degree() < 3 || poly.Degree() > MaxPolynomialDegree {
		return Result{}
	}

	content := poly.Content()
	prim := poly.Primitive()
	lc := new(big.Int).Set(prim.Leading())
	n := prim.Degree()

	// Kronecker-style substitution y = lc*x makes the working polynomial
	// monic: g(y) = lc^(n-1) * prim(y/lc), with integer coefficients
	// g_i = prim_i * lc^(n-1-i), g_n = 1.
	gCoeffs := make([]*big.Int, n+1)
	gCoeffs[n] = big.NewInt(1)
	for i := 0; i < n; i++ {
		c := prim.Coeff(i)
		if c.Sign() == 0 {
			gCoeffs[i] = big.NewInt(0)
			continue
		}
		power := new(big.Int).Exp(lc, big.NewInt(int64(n-1-i)), nil)
		gCoeffs[i] = new(big.Int).Mul(c, power)
	}
	gPoly := NewPoly(gCoeffs)

	p, ok := chooseWorkingPrime(gPoly)
	if !ok {
		return Result{}
	}
	fp := modular.FromBigInts(gPoly.Coeffs, p)

	basis := modular.NullSpace(modular.BerlekampMatrix(fp), p)
	fpFactors := modular.Split(fp, basis)
	if len(fpFactors) <= 1 {
		return Result{}
	}

	target := mignotteBound(gPoly)
	leaves := liftTree(gPoly.Coeffs, fpFactors, p, target)

	trueGFactors := modular.Recombine(gPoly.Coeffs, big.NewInt(1), leaves, target)
	if len(trueGFactors) <= 1 {
		return Result{}
	}

	var factorExprs []ast.Expr
	for _, gf := range trueGFactors {
		xCoeffs := make([]*big.Int, len(gf))
		for i, c := range gf {
			power := new(big.Int).Exp(lc, big.NewInt(int64(i)), nil)
			xCoeffs[i] = new(big.Int).Mul(c, power)
		}
		xPoly := NewPoly(xCoeffs).Primitive()
		if xPoly.Degree() <= 0 && xPoly.Leading().CmpAbs(big.NewInt(1)) == 0 {
			continue
		}
		factorExprs = append(factorExprs, ToAST(xPoly, name))
	}
	if len(factorExprs) <= 1 {
		return Result{}
	}

	result := factorExprs[0]
	for _, f := range factorExprs[1:] {
		result = &ast.Binary{Op: ast.OpMul, Left: result, Right: f}
	}
	if content.CmpAbs(big.NewInt(1)) != 0 {
		result = &ast.Binary{Op: ast.OpMul, Left: intNodeBig(content), Right: result}
	}

	return Result{
		Success:     true,
		Changed:     true,
		AST:         result,
		Steps:       []trace.Step{trace.Text("Berlekamp-Zassenhaus split over GF(" + bigString(big.NewInt(p)) + ")")},
		CanContinue: true,
	}
}

func bigString(v *big.Int) string { return v.String() }

// chooseWorkingPrime finds the first small prime under which g's reduction
// keeps full degree and stays squarefree.
func chooseWorkingPrime(g Poly) (int64, bool) {
	for _, p := range smallPrimes {
		fp := modular.FromBigInts(g.Coeffs, p)
		if fp.Degree() != g.Degree() {
			continue
		}
		deriv := fieldDerivative(fp)
		gcd := modular.GCD(fp, deriv)
		if gcd.Degree() <= 0 {
			return p, true
		}
	}
	return 0, false
}

func fieldDerivative(f modular.FieldPoly) modular.FieldPoly {
	if f.Degree() <= 0 {
		return modular.FieldPoly{P: f.P}
	}
	coeffs := make([]int64, f.Degree())
	for i := 1; i <= f.Degree(); i++ {
		coeffs[i-1] = fpMod(int64(i)*f.Coeff(i), f.P)
	}
	return modular.NewFieldPoly(f.P, coeffs)
}

func fpMod(a, p int64) int64 {
	r := a % p
	if r < 0 {
		r += p
	}
	return r
}

// mignotteBound computes a (deliberately generous, simplified) Mignotte
// bound on the coefficients of any integer factor of g:
// 2 * |lc(g)| * 2^deg(g) * (||g||_2 + 1).
func mignotteBound(g Poly) *big.Int {
	n := g.Degree()
	sumSq := new(big.Int)
	for _, c := range g.Coeffs {
		sumSq.Add(sumSq, new(big.Int).Mul(c, c))
	}
	norm := new(big.Int).Sqrt(sumSq)
	norm.Add(norm, big.NewInt(1))
	bound := new(big.Int).Lsh(norm, uint(n))
	bound.Mul(bound, new(big.Int).Abs(g.Leading()))
	bound.Mul(bound, big.NewInt(2))
	bound.Add(bound, big.NewInt(1))
	return bound
}

// liftTree recursively Hensel-lifts a binary split of fpFactors against
// fBig up to target precision, descending until each leaf holds one
// finite-field factor lifted to a true (symmetric-range) integer
// representative.
func liftTree(fBig []*big.Int, factors []modular.FieldPoly, p int64, target *big.Int) [][]*big.Int {
	if len(factors) == 1 {
		return [][]*big.Int{modular.SymmetricMod(fBig, target)}
	}
	mid := len(factors) / 2
	left, right := factors[:mid], factors[mid:]
	g0 := productFieldPoly(left)
	h0 := productFieldPoly(right)

	gBig, hBig, modulus := modular.LiftPair(fBig, g0, h0, p, target)
	gBig = modular.SymmetricMod(gBig, modulus)
	hBig = modular.SymmetricMod(hBig, modulus)

	leftLeaves := liftTree(gBig, left, p, target)
	rightLeaves := liftTree(hBig, right, p, target)
	return append(leftLeaves, rightLeaves...)
}

func productFieldPoly(factors []modular.FieldPoly) modular.FieldPoly {
	result := modular.FieldPoly{P: factors[0].P, Coeffs: []int64{1}}
	for _, f := range factors {
		result = result.Mul(f)
	}
	return result
}
