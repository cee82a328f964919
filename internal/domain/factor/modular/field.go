// Package modular implements the finite-field half of
// Berlekamp-Zassenhaus factorization: a dense polynomial type over F_p,
// the Berlekamp matrix, its null space via Gauss-Jordan elimination,
// and the recursive gcd-based splitting that turns null-space vectors
// into irreducible factors.
//
// Uses the same dense-coefficient-vector idiom as
// internal/domain/factor.Poly, specialized to small-modulus native
// int64 arithmetic since field elements never exceed p < 50.
package modular

import "math/big"

// FieldPoly is a dense polynomial over F_p, coefficients constant-first,
// each reduced into [0, p).
type FieldPoly struct {
	P      int64
	Coeffs []int64
}

// NewFieldPoly reduces coeffs mod p and trims trailing zeros.
func NewFieldPoly(p int64, coeffs []int64) FieldPoly {
	out := make([]int64, len(coeffs))
	for i, c := range coeffs {
		out[i] = mod(c, p)
	}
	return FieldPoly{P: p, Coeffs: out}.Trim()
}

// FromBigInts reduces an integer coefficient vector (constant-first) mod p.
func FromBigInts(coeffs []*big.Int, p int64) FieldPoly {
	out := make([]int64, len(coeffs))
	for i, c := range coeffs {
		r := new(big.Int).Mod(c, big.NewInt(p)).Int64()
		out[i] = r
	}
	return NewFieldPoly(p, out)
}

func mod(a, p int64) int64 {
	r := a % p
	if r < 0 {
		r += p
	}
	return r
}

// Trim drops trailing zero coefficients.
func (f FieldPoly) Trim() FieldPoly {
	n := len(f.Coeffs)
	for n > 0 && f.Coeffs[n-1] == 0 {
		n--
	}
	return FieldPoly{P: f.P, Coeffs: append([]int64(nil), f.Coeffs[:n]...)}
}

// Degree returns f's degree, -1 for the zero polynomial.
func (f FieldPoly) Degree() int { return len(f.Coeffs) - 1 }

// IsZero reports whether f is the zero polynomial.
func (f FieldPoly) IsZero() bool { return len(f.Coeffs) == 0 }

// Coeff returns the coefficient of x^i, 0 outside the stored range.
func (f FieldPoly) Coeff(i int) int64 {
	if i < 0 || i >= len(f.Coeffs) {
		return 0
	}
	return f.Coeffs[i]
}

// Leading returns f's leading coefficient.
func (f FieldPoly) Leading() int64 { return f.Coeff(f.Degree()) }

// modInverse returns a^-1 mod p via the extended Euclidean algorithm;
// p must be prime so every nonzero residue is invertible.
func modInverse(a, p int64) int64 {
	a = mod(a, p)
	g, x, _ := extendedGCD(a, p)
	if g != 1 {
		return 0
	}
	return mod(x, p)
}

func extendedGCD(a, b int64) (g, x, y int64) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := extendedGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

// Monic returns f scaled so its leading coefficient is 1.
func (f FieldPoly) Monic() FieldPoly {
	if f.IsZero() {
		return f
	}
	inv := modInverse(f.Leading(), f.P)
	out := make([]int64, len(f.Coeffs))
	for i, c := range f.Coeffs {
		out[i] = mod(c*inv, f.P)
	}
	return FieldPoly{P: f.P, Coeffs: out}.Trim()
}

// Add returns f + g.
func (f FieldPoly) Add(g FieldPoly) FieldPoly {
	n := maxInt(len(f.Coeffs), len(g.Coeffs))
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = mod(f.Coeff(i)+g.Coeff(i), f.P)
	}
	return FieldPoly{P: f.P, Coeffs: out}.Trim()
}

// Sub returns f - g.
func (f FieldPoly) Sub(g FieldPoly) FieldPoly {
	n := maxInt(len(f.Coeffs), len(g.Coeffs))
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = mod(f.Coeff(i)-g.Coeff(i), f.P)
	}
	return FieldPoly{P: f.P, Coeffs: out}.Trim()
}

// Mul returns f * g by convolution mod p.
func (f FieldPoly) Mul(g FieldPoly) FieldPoly {
	if f.IsZero() || g.IsZero() {
		return FieldPoly{P: f.P}
	}
	out := make([]int64, len(f.Coeffs)+len(g.Coeffs)-1)
	for i, a := range f.Coeffs {
		if a == 0 {
			continue
		}
		for j, b := range g.Coeffs {
			out[i+j] = mod(out[i+j]+a*b, f.P)
		}
	}
	return FieldPoly{P: f.P, Coeffs: out}.Trim()
}

// DivMod returns (quotient, remainder) of f / g over F_p via schoolbook
// polynomial long division; g must be non-zero.
func (f FieldPoly) DivMod(g FieldPoly) (FieldPoly, FieldPoly) {
	remainder := f.Trim()
	if g.IsZero() {
		return FieldPoly{P: f.P}, remainder
	}
	quotient := make([]int64, 0)
	gInv := modInverse(g.Leading(), f.P)
	for remainder.Degree() >= g.Degree() && !remainder.IsZero() {
		shift := remainder.Degree() - g.Degree()
		coeff := mod(remainder.Leading()*gInv, f.P)
		for len(quotient) <= shift {
			quotient = append(quotient, 0)
		}
		quotient[shift] = coeff
		term := make([]int64, shift+len(g.Coeffs))
		for i, c := range g.Coeffs {
			term[i+shift] = mod(c*coeff, f.P)
		}
		remainder = remainder.Sub(FieldPoly{P: f.P, Coeffs: term})
	}
	return FieldPoly{P: f.P, Coeffs: quotient}.Trim(), remainder
}

// Mod reduces f modulo g.
func (f FieldPoly) Mod(g FieldPoly) FieldPoly {
	_, r := f.DivMod(g)
	return r
}

// ModPow computes base^exp mod modulus over F_p.
func (base FieldPoly) ModPow(exp int64, modulus FieldPoly) FieldPoly {
	result := FieldPoly{P: base.P, Coeffs: []int64{1}}
	b := base.Mod(modulus)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(b).Mod(modulus)
		}
		b = b.Mul(b).Mod(modulus)
		exp >>= 1
	}
	return result
}

// GCD returns gcd(f, g) over F_p via the Euclidean algorithm, monic-normalized.
func GCD(f, g FieldPoly) FieldPoly {
	a, b := f.Trim(), g.Trim()
	for !b.IsZero() {
		_, r := a.DivMod(b)
		a, b = b, r
	}
	if a.IsZero() {
		return a
	}
	return a.Monic()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
