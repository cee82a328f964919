package modular

import "math/big"

// MaxRecombineCombos bounds how many subsets of lifted factors Recombine
// will trial before giving up on a given subset size.
const MaxRecombineCombos = 100000

// SymmetricMod reduces every coefficient of coeffs into the symmetric
// range (-modulus/2, modulus/2].
func SymmetricMod(coeffs []*big.Int, modulus *big.Int) []*big.Int {
	half := new(big.Int).Rsh(modulus, 1)
	out := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		r := new(big.Int).Mod(c, modulus)
		if r.Cmp(half) > 0 {
			r.Sub(r, modulus)
		}
		out[i] = r
	}
	return out
}

// Recombine implements Zassenhaus's subset-product recombination:
// starting from the lifted mod-p^k factors, it trial-multiplies
// subsets (scaled by the original leading coefficient,
// symmetric-mod-reduced), and checks exact integer divisibility against
// the remaining cofactor. A successful subset yields one true integer
// factor; the search restarts at the same subset size until no further
// subset of that size succeeds, then grows the subset size. Subset
// enumeration is capped at MaxRecombineCombos per size as a tractability
// guard — exceeding it abandons that subset size and moves on to the
// next; whatever cofactor remains when the search ends is emitted whole
// (a correct, merely less-factored, result).
func Recombine(original []*big.Int, leadingCoeff *big.Int, liftedFactors [][]*big.Int, modulus *big.Int) [][]*big.Int {
	remaining := trimInt(append([]*big.Int(nil), original...))
	pool := append([][]*big.Int(nil), liftedFactors...)
	var trueFactors [][]*big.Int

	for subsetSize := 1; subsetSize <= len(pool)-subsetSize && len(pool) > 0; {
		if subsetSize > len(pool) {
			break
		}
		found := false
		combos := 0
	search:
		for mask := 1; mask < (1 << len(pool)); mask++ {
			if popcount(mask) != subsetSize {
				continue
			}
			combos++
			if combos > MaxRecombineCombos {
				break
			}
			candidate := []*big.Int{leadingCoeff}
			for i := 0; i < len(pool); i++ {
				if mask&(1<<i) == 0 {
					continue
				}
				candidate = intPolyMul(candidate, pool[i])
			}
			candidate = SymmetricMod(candidate, modulus)
			primitive := primitivePart(candidate)
			quot, ok := intPolyDivExact(remaining, primitive)
			if !ok {
				continue
			}
			trueFactors = append(trueFactors, primitive)
			var nextPool [][]*big.Int
			for i := 0; i < len(pool); i++ {
				if mask&(1<<i) == 0 {
					nextPool = append(nextPool, pool[i])
				}
			}
			pool = nextPool
			remaining = trimInt(quot)
			found = true
			break search
		}
		if !found {
			subsetSize++
		}
	}

	if len(remaining) > 1 || (len(remaining) == 1 && remaining[0].Sign() != 0 && remaining[0].CmpAbs(big.NewInt(1)) != 0) {
		trueFactors = append(trueFactors, remaining)
	}
	return trueFactors
}

func popcount(mask int) int {
	n := 0
	for mask != 0 {
		n += mask & 1
		mask >>= 1
	}
	return n
}

func trimInt(v []*big.Int) []*big.Int {
	n := len(v)
	for n > 0 && v[n-1].Sign() == 0 {
		n--
	}
	return v[:n]
}

func intPolyMul(a, b []*big.Int) []*big.Int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, x := range a {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range b {
			out[i+j].Add(out[i+j], new(big.Int).Mul(x, y))
		}
	}
	return out
}

func primitivePart(v []*big.Int) []*big.Int {
	v = trimInt(v)
	if len(v) == 0 {
		return v
	}
	g := new(big.Int).Abs(v[0])
	for _, c := range v[1:] {
		g.GCD(nil, nil, g, new(big.Int).Abs(c))
		if g.Cmp(big.NewInt(1)) == 0 {
			break
		}
	}
	if g.Sign() == 0 {
		g = big.NewInt(1)
	}
	out := make([]*big.Int, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Quo(c, g)
	}
	if out[len(out)-1].Sign() < 0 {
		for i := range out {
			out[i].Neg(out[i])
		}
	}
	return out
}

// ExactDivide divides f by g over the integers, reporting ok=false when
// g does not divide f exactly (used by the LLL fallback to verify a
// candidate short-vector factor before accepting it).
func ExactDivide(f, g []*big.Int) ([]*big.Int, bool) {
	return intPolyDivExact(f, g)
}

// intPolyDivExact divides f by g over the rationals and reports whether
// every resulting coefficient (and the remainder) is an exact integer
// with zero remainder, i.e. g divides f exactly in Z[x].
func intPolyDivExact(f, g []*big.Int) ([]*big.Int, bool) {
	f = trimInt(append([]*big.Int(nil), f...))
	g = trimInt(append([]*big.Int(nil), g...))
	if len(g) == 0 {
		return nil, false
	}
	if len(f) < len(g) {
		return nil, len(f) == 0
	}
	remainder := make([]*big.Rat, len(f))
	for i, c := range f {
		remainder[i] = new(big.Rat).SetInt(c)
	}
	gLead := new(big.Rat).SetInt(g[len(g)-1])
	quotient := make([]*big.Rat, len(f)-len(g)+1)
	for i := range quotient {
		quotient[i] = new(big.Rat)
	}
	for deg := len(remainder) - 1; deg >= len(g)-1; deg-- {
		if remainder[deg].Sign() == 0 {
			continue
		}
		coeff := new(big.Rat).Quo(remainder[deg], gLead)
		shift := deg - (len(g) - 1)
		quotient[shift] = coeff
		for i, gc := range g {
			gcRat := new(big.Rat).SetInt(gc)
			term := new(big.Rat).Mul(coeff, gcRat)
			remainder[shift+i].Sub(remainder[shift+i], term)
		}
	}
	for _, r := range remainder {
		if r.Sign() != 0 {
			return nil, false
		}
	}
	out := make([]*big.Int, len(quotient))
	for i, q := range quotient {
		if !q.IsInt() {
			return nil, false
		}
		out[i] = new(big.Int).Set(q.Num())
		if q.Denom().Cmp(big.NewInt(1)) != 0 {
			return nil, false
		}
	}
	return trimInt(out), true
}
