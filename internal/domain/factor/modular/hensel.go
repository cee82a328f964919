package modular

import "math/big"

// ExtendedGCD returns (gcd, s, t) with s*f + t*g == gcd over F_p[x], via
// the polynomial extended Euclidean algorithm. Used to seed the Bezout
// coefficients that drive Hensel lifting.
func ExtendedGCD(f, g FieldPoly) (gcd, s, t FieldPoly) {
	p := f.P
	one := FieldPoly{P: p, Coeffs: []int64{1}}
	zero := FieldPoly{P: p}
	oldR, r := f.Trim(), g.Trim()
	oldS, newS := one, zero
	oldT, newT := zero, one
	for !r.IsZero() {
		q, rem := oldR.DivMod(r)
		oldR, r = r, rem
		oldS, newS = newS, oldS.Sub(q.Mul(newS))
		oldT, newT = newT, oldT.Sub(q.Mul(newT))
	}
	if oldR.IsZero() {
		return oldR, oldS, oldT
	}
	inv := modInverse(oldR.Leading(), p)
	scale := FieldPoly{P: p, Coeffs: []int64{inv}}
	return oldR.Monic(), scale.Mul(oldS), scale.Mul(oldT)
}

// bigVec is a dense big.Int coefficient vector, constant-first, local to
// this package's Hensel step (kept separate from factor.Poly to avoid an
// import cycle between the two packages).
type bigVec []*big.Int

func vecFromField(f FieldPoly, length int) bigVec {
	out := make(bigVec, length)
	for i := range out {
		if i <= f.Degree() {
			out[i] = big.NewInt(f.Coeff(i))
		} else {
			out[i] = big.NewInt(0)
		}
	}
	return out
}

func (v bigVec) add(w bigVec) bigVec {
	n := len(v)
	if len(w) > n {
		n = len(w)
	}
	out := make(bigVec, n)
	for i := 0; i < n; i++ {
		a, b := big.NewInt(0), big.NewInt(0)
		if i < len(v) {
			a = v[i]
		}
		if i < len(w) {
			b = w[i]
		}
		out[i] = new(big.Int).Add(a, b)
	}
	return out
}

func (v bigVec) sub(w bigVec) bigVec {
	n := len(v)
	if len(w) > n {
		n = len(w)
	}
	out := make(bigVec, n)
	for i := 0; i < n; i++ {
		a, b := big.NewInt(0), big.NewInt(0)
		if i < len(v) {
			a = v[i]
		}
		if i < len(w) {
			b = w[i]
		}
		out[i] = new(big.Int).Sub(a, b)
	}
	return out
}

func (v bigVec) mul(w bigVec) bigVec {
	if len(v) == 0 || len(w) == 0 {
		return nil
	}
	out := make(bigVec, len(v)+len(w)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, a := range v {
		if a.Sign() == 0 {
			continue
		}
		for j, b := range w {
			out[i+j].Add(out[i+j], new(big.Int).Mul(a, b))
		}
	}
	return out
}

func (v bigVec) scale(k *big.Int) bigVec {
	out := make(bigVec, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Mul(c, k)
	}
	return out
}

// exactDiv divides every coefficient of v by k, assuming exact
// divisibility (guaranteed by the Hensel lifting invariant).
func (v bigVec) exactDiv(k *big.Int) bigVec {
	out := make(bigVec, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Quo(c, k)
	}
	return out
}

func (v bigVec) mod(p int64) FieldPoly {
	out := make([]int64, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Mod(c, big.NewInt(p)).Int64()
	}
	return FieldPoly{P: p, Coeffs: out}.Trim()
}

// LiftPair performs linear Hensel lifting of a coprime factorization
// f ≡ g0*h0 (mod p) up to a modulus exceeding target: it steps by one
// prime power per iteration rather than fully quadratic-doubling,
// trading iteration count for a far simpler, still-exact recurrence.
func LiftPair(f bigVec, g0, h0 FieldPoly, p int64, target *big.Int) (gLifted, hLifted bigVec, modulus *big.Int) {
	_, s0, t0 := ExtendedGCD(g0, h0)

	gDeg := g0.Degree() + 1
	hDeg := h0.Degree() + 1
	g := vecFromField(g0, gDeg)
	h := vecFromField(h0, hDeg)
	m := big.NewInt(p)

	for m.Cmp(target) < 0 {
		e := f.sub(g.mul(h))
		e2 := e.exactDiv(m)
		ep := e2.mod(p)

		c := t0.Mul(ep)
		q, sigma := c.DivMod(g0)
		tau := s0.Mul(ep).Add(q.Mul(h0))

		g = g.add(vecFromField(sigma, gDeg).scale(m))
		h = h.add(vecFromField(tau, hDeg).scale(m))

		m = new(big.Int).Mul(m, big.NewInt(p))
	}
	return g, h, m
}
