package factor

import (
	"math/big"

	"github.com/Stasshe/Latexium-sub002/internal/domain/ast"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor/lattice"
	"github.com/Stasshe/Latexium-sub002/internal/domain/factor/modular"
	"github.com/Stasshe/Latexium-sub002/internal/domain/trace"
)

// LLLStrategy: when Berlekamp-Zassenhaus leaves a degree >= 4 polynomial
// unsplit, build a lattice from one Hensel-lifted finite-field factor,
// reduce it, and test short vectors as candidate true factors via exact
// integer division. Best-effort: absence of a split here is not an
// error, only a missed simplification.
type LLLStrategy struct{}

func (LLLStrategy) Name() string { return "lll-fallback" }
func (LLLStrategy) Priority() int { return 30 }

func (LLLStrategy) CanApply(node ast.Expr, _ Context) bool {
	name, ok := ast.InferVariable(node)
	if !ok {
		return false
	}
	poly, ok := FromAST(node, name)
	if !ok {
		return false
	}
	return poly.Degree() >= 4 && poly.Degree() <= MaxPolynomialDegree
}

func (LLLStrategy) Apply(node ast.Expr, _ Context) Result {
	name, ok := ast.InferVariable(node)
	if !ok {
		return Result{}
	}
	poly, ok := FromAST(node, name)
	if !ok || poly.Degree() < 4 {
		return Result{}
	}

	content := poly.Content()
	prim := poly.Primitive()
	lc := new(big.Int).Set(prim.Leading())
	n := prim.Degree()

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

	// Work against the lowest-degree irreducible factor: it yields the
	// smallest, cheapest lattice.
	h := fpFactors[0]
	for _, f := range fpFactors[1:] {
		if f.Degree() < h.Degree() {
			h = f
		}
	}

	target := mignotteBound(gPoly)
	hLifted := liftSingleFactor(gPoly.Coeffs, h, fpFactors, p, target)

	candidate, ok := lllFindFactor(gPoly.Coeffs, hLifted, h.Degree(), n, p, target)
	if !ok {
		return Result{}
	}

	quotient, divOK := modular.ExactDivide(gPoly.Coeffs, candidate)
	if !divOK {
		return Result{}
	}

	toXDomain := func(yCoeffs []*big.Int) ast.Expr {
		xCoeffs := make([]*big.Int, len(yCoeffs))
		for i, c := range yCoeffs {
			power := new(big.Int).Exp(lc, big.NewInt(int64(i)), nil)
			xCoeffs[i] = new(big.Int).Mul(c, power)
		}
		return ToAST(NewPoly(xCoeffs).Primitive(), name)
	}

	left := toXDomain(candidate)
	right := toXDomain(quotient)
	result := ast.Expr(&ast.Binary{Op: ast.OpMul, Left: left, Right: right})
	if content.CmpAbs(big.NewInt(1)) != 0 {
		result = &ast.Binary{Op: ast.OpMul, Left: intNodeBig(content), Right: result}
	}

	return Result{
		Success:     true,
		Changed:     true,
		AST:         result,
		Steps:       []trace.Step{trace.Text("LLL lattice fallback found a short-vector factor")},
		CanContinue: true,
	}
}

// liftSingleFactor Hensel-lifts h against the product of every other
// finite-field factor, returning h's lift only.
func liftSingleFactor(fBig []*big.Int, h modular.FieldPoly, all []modular.FieldPoly, p int64, target *big.Int) []*big.Int {
	var rest modular.FieldPoly
	first := true
	for _, f := range all {
		if f.Degree() == h.Degree() && isSameFieldPoly(f, h) && first {
			first = false
			continue
		}
		if rest.Coeffs == nil {
			rest = modular.FieldPoly{P: h.P, Coeffs: []int64{1}}
		}
		rest = rest.Mul(f)
	}
	gBig, _, modulus := modular.LiftPair(fBig, h, rest, p, target)
	return modular.SymmetricMod(gBig, modulus)
}

func isSameFieldPoly(a, b modular.FieldPoly) bool {
	if a.Degree() != b.Degree() {
		return false
	}
	for i := 0; i <= a.Degree(); i++ {
		if a.Coeff(i) != b.Coeff(i) {
			return false
		}
	}
	return true
}

// lllFindFactor builds the classical LLL polynomial-factorization
// lattice for a single lifted factor h (degree d, working modulus
// target) inside the ambient degree-n space, reduces it, and returns the
// first of the first six reduced rows, taken in basis order, that
// exactly divides fBig.
func lllFindFactor(fBig []*big.Int, hLifted []*big.Int, d, n int, p int64, target *big.Int) ([]*big.Int, bool) {
	if n-d <= 0 {
		return nil, false
	}
	dim := n
	var basis [][]*big.Int

	// Rows spanning the scaled-identity sublattice: multiples of target
	// in the low-degree coordinates are "free" since h is only known
	// mod target.
	for i := 0; i < d; i++ {
		row := make([]*big.Int, dim)
		for j := range row {
			row[j] = big.NewInt(0)
		}
		row[i] = new(big.Int).Set(target)
		basis = append(basis, row)
	}
	// Rows spanning shifts of hLifted: coefficients of x^i * h(x), each
	// of degree i+d < n.
	hPadded := make([]*big.Int, d+1)
	copy(hPadded, hLifted)
	for i := range hPadded {
		if hPadded[i] == nil {
			hPadded[i] = big.NewInt(0)
		}
	}
	for i := 0; i < n-d; i++ {
		row := make([]*big.Int, dim)
		for j := range row {
			row[j] = big.NewInt(0)
		}
		for j, c := range hPadded {
			row[i+j] = new(big.Int).Set(c)
		}
		basis = append(basis, row)
	}

	reduced := lattice.Reduce(basis, lattice.Delta)

	checkCount := len(reduced)
	if checkCount > 6 {
		checkCount = 6
	}
	for i := 0; i < checkCount; i++ {
		candidate := trimBigIntVec(reduced[i])
		if len(candidate) < 2 || len(candidate) > n {
			continue
		}
		if _, ok := modular.ExactDivide(fBig, candidate); ok {
			return candidate, true
		}
	}
	return nil, false
}

func trimBigIntVec(v []*big.Int) []*big.Int {
	n := len(v)
	for n > 0 && v[n-1].Sign() == 0 {
		n--
	}
	return v[:n]
}
