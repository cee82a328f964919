// Package lattice implements Lenstra-Lenstra-Lovász basis reduction,
// used by the factor package as a best-effort fallback when
// Berlekamp-Zassenhaus recombination fails to split a high-degree
// polynomial.
//
// Uses the same big.Int/big.Rat exact-arithmetic idiom as the rest of
// internal/domain/factor and internal/domain/rational.
package lattice

import "math/big"

// Delta is the standard Lovász condition parameter.
var Delta = big.NewRat(3, 4)

// Reduce applies size reduction and Lovász swaps to basis (a list of
// integer vectors, all the same length) until both conditions hold for
// every adjacent pair, returning a new reduced basis. The input basis
// must be linearly independent.
func Reduce(basis [][]*big.Int, delta *big.Rat) [][]*big.Int {
	n := len(basis)
	if n == 0 {
		return nil
	}
	b := make([][]*big.Int, n)
	for i, row := range basis {
		b[i] = cloneVec(row)
	}

	bStar, mu, normSq := gramSchmidt(b)
	k := 1
	for k < n {
		for j := k - 1; j >= 0; j-- {
			if ratAbs(mu[k][j]).Cmp(half) > 0 {
				q := roundRat(mu[k][j])
				if q.Sign() != 0 {
					b[k] = subVec(b[k], scaleVecInt(b[j], q))
					bStar, mu, normSq = gramSchmidt(b)
				}
			}
		}
		lhs := normSq[k]
		rhs := new(big.Rat).Sub(delta, new(big.Rat).Mul(mu[k][k-1], mu[k][k-1]))
		rhs.Mul(rhs, normSq[k-1])
		if lhs.Cmp(rhs) >= 0 {
			k++
		} else {
			b[k], b[k-1] = b[k-1], b[k]
			bStar, mu, normSq = gramSchmidt(b)
			if k-1 > 1 {
				k = k - 1
			} else {
				k = 1
			}
		}
	}
	_ = bStar
	return b
}

var half = big.NewRat(1, 2)

func cloneVec(v []*big.Int) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

func ratVec(v []*big.Int) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, c := range v {
		out[i] = new(big.Rat).SetInt(c)
	}
	return out
}

func dot(a, b []*big.Rat) *big.Rat {
	sum := new(big.Rat)
	for i := range a {
		sum.Add(sum, new(big.Rat).Mul(a[i], b[i]))
	}
	return sum
}

func subVecRat(a, b []*big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(a))
	for i := range a {
		out[i] = new(big.Rat).Sub(a[i], b[i])
	}
	return out
}

func scaleVecRat(v []*big.Rat, k *big.Rat) []*big.Rat {
	out := make([]*big.Rat, len(v))
	for i, c := range v {
		out[i] = new(big.Rat).Mul(c, k)
	}
	return out
}

func subVec(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Sub(a[i], b[i])
	}
	return out
}

func scaleVecInt(v []*big.Int, k *big.Int) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, c := range v {
		out[i] = new(big.Int).Mul(c, k)
	}
	return out
}

func ratAbs(r *big.Rat) *big.Rat {
	return new(big.Rat).Abs(r)
}

// roundRat returns the nearest integer to r (ties rounded away from zero).
func roundRat(r *big.Rat) *big.Int {
	num := new(big.Int).Mul(r.Num(), big.NewInt(2))
	den := new(big.Int).Mul(r.Denom(), big.NewInt(2))
	if num.Sign() >= 0 {
		num.Add(num, r.Denom())
	} else {
		num.Sub(num, r.Denom())
	}
	return new(big.Int).Quo(num, den)
}

// gramSchmidt computes the orthogonal basis, Gram-Schmidt coefficients,
// and squared norms of b, recomputed from scratch (the working
// dimensions here are small — bounded by a polynomial's degree — so the
// O(n) redundant recomputation per swap is not a practical concern).
func gramSchmidt(b [][]*big.Int) ([][]*big.Rat, [][]*big.Rat, []*big.Rat) {
	n := len(b)
	bRat := make([][]*big.Rat, n)
	for i, row := range b {
		bRat[i] = ratVec(row)
	}
	bStar := make([][]*big.Rat, n)
	mu := make([][]*big.Rat, n)
	normSq := make([]*big.Rat, n)
	for i := 0; i < n; i++ {
		mu[i] = make([]*big.Rat, n)
		for j := range mu[i] {
			mu[i][j] = new(big.Rat)
		}
		cur := bRat[i]
		for j := 0; j < i; j++ {
			m := new(big.Rat).Quo(dot(bRat[i], bStar[j]), normSq[j])
			mu[i][j] = m
			cur = subVecRat(cur, scaleVecRat(bStar[j], m))
		}
		bStar[i] = cur
		normSq[i] = dot(cur, cur)
	}
	return bStar, mu, normSq
}
