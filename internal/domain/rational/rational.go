// Package rational implements the exact rational arithmetic the engine
// uses for every Number node and every polynomial coefficient: internal
// arithmetic is always exact, with floating-point display reserved for
// the boundary "approx" task.
//
// Wraps math/big, exposing the small arithmetic surface the rest of the
// engine needs, with a canonical-form invariant: the denominator is
// always positive and coprime with the numerator.
package rational

import (
	"fmt"
	"math/big"
)

// Rational is an exact (numerator, denominator) pair in canonical form:
// denominator > 0, gcd(|numerator|, denominator) == 1.
type Rational struct {
	r *big.Rat
}

// Zero is the additive identity.
var Zero = FromInt64(0)

// One is the multiplicative identity.
var One = FromInt64(1)

// FromInt64 builds an integer Rational (denominator 1).
func FromInt64(n int64) Rational {
	return Rational{r: big.NewRat(n, 1)}
}

// FromBigInt builds an integer Rational from a big.Int numerator.
func FromBigInt(n *big.Int) Rational {
	return Rational{r: new(big.Rat).SetInt(n)}
}

// FromInts builds num/den, normalizing sign and gcd via big.Rat.
func FromInts(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, fmt.Errorf("rational: zero denominator")
	}
	return Rational{r: big.NewRat(num, den)}, nil
}

// FromBigInts builds num/den as a canonical Rational.
func FromBigInts(num, den *big.Int) (Rational, error) {
	if den.Sign() == 0 {
		return Rational{}, fmt.Errorf("rational: zero denominator")
	}
	r := new(big.Rat).SetFrac(num, den)
	return Rational{r: r}, nil
}

// FromString parses a decimal literal ("3", "3.14", "-0.5") into an exact Rational.
func FromString(s string) (Rational, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rational{}, false
	}
	return Rational{r: r}, true
}

func (a Rational) ensure() *big.Rat {
	if a.r == nil {
		return big.NewRat(0, 1)
	}
	return a.r
}

// Num returns the (signed) numerator in canonical form.
func (a Rational) Num() *big.Int { return new(big.Int).Set(a.ensure().Num()) }

// Denom returns the (positive) denominator in canonical form.
func (a Rational) Denom() *big.Int { return new(big.Int).Set(a.ensure().Denom()) }

// IsInteger reports whether the denominator is 1.
func (a Rational) IsInteger() bool { return a.ensure().IsInt() }

// IsZero reports whether the value is exactly zero.
func (a Rational) IsZero() bool { return a.ensure().Sign() == 0 }

// Sign returns -1, 0, or 1.
func (a Rational) Sign() int { return a.ensure().Sign() }

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	return Rational{r: new(big.Rat).Add(a.ensure(), b.ensure())}
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{r: new(big.Rat).Sub(a.ensure(), b.ensure())}
}

// Mul returns a * b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{r: new(big.Rat).Mul(a.ensure(), b.ensure())}
}

// Div returns a / b, or a plain error when b is zero; mapping that to an
// Algorithmic/Scope domain error is left to a higher layer.
func (a Rational) Div(b Rational) (Rational, error) {
	if b.IsZero() {
		return Rational{}, fmt.Errorf("rational: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(a.ensure(), b.ensure())}, nil
}

// Neg returns -a.
func (a Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(a.ensure())}
}

// Abs returns |a|.
func (a Rational) Abs() Rational {
	return Rational{r: new(big.Rat).Abs(a.ensure())}
}

// PowInt returns a^n for a non-negative integer n. A negative n inverts
// a first, erroring if a is zero (0^negative is undefined).
func (a Rational) PowInt(n int) (Rational, error) {
	if n == 0 {
		return One, nil
	}
	base := a
	exp := n
	if exp < 0 {
		if a.IsZero() {
			return Rational{}, fmt.Errorf("rational: zero to a negative power")
		}
		inv, err := One.Div(a)
		if err != nil {
			return Rational{}, err
		}
		base = inv
		exp = -exp
	}
	result := One
	acc := base
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(acc)
		}
		acc = acc.Mul(acc)
		exp >>= 1
	}
	return result, nil
}

// Cmp returns -1, 0, +1 as a <, ==, > b.
func (a Rational) Cmp(b Rational) int {
	return a.ensure().Cmp(b.ensure())
}

// Equal reports structural (canonical) equality.
func (a Rational) Equal(b Rational) bool {
	return a.Cmp(b) == 0
}

// Float64 converts to the nearest float64, for the boundary "approx" task.
func (a Rational) Float64() float64 {
	f, _ := a.ensure().Float64()
	return f
}

// String renders the canonical decimal/fraction form used internally for
// debugging; LaTeX rendering lives in the ast package.
func (a Rational) String() string {
	if a.IsInteger() {
		return a.ensure().Num().String()
	}
	return a.ensure().RatString()
}

// GCDBigInt is the non-negative gcd of two big.Ints, exposed for the
// factorization engine's common-factor strategy.
func GCDBigInt(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}
