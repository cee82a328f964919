package modular_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stasshe/Latexium-sub002/internal/domain/factor/modular"
)

func bi(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

func mulInt(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	for i, ca := range a {
		for j, cb := range b {
			out[i+j].Add(out[i+j], new(big.Int).Mul(ca, cb))
		}
	}
	return out
}

func TestExtendedGCD_CoprimeLinearFactors(t *testing.T) {
	g0 := modular.NewFieldPoly(5, []int64{-1, 1}) // x - 1
	h0 := modular.NewFieldPoly(5, []int64{1, 1})  // x + 1
	gcd, s, tt := modular.ExtendedGCD(g0, h0)

	assert.Equal(t, 0, gcd.Degree())
	lhs := s.Mul(g0).Add(tt.Mul(h0)).Trim()
	assert.Equal(t, gcd.Trim().Coeffs, lhs.Coeffs, "s*g0 + t*h0 should equal gcd")
}

func TestLiftPair_ExactFactorizationIsStable(t *testing.T) {
	// f = x^2 - 1 = (x-1)(x+1), already exact mod any prime that
	// doesn't divide the discriminant; lifting two prime-power steps
	// should recover exactly the same integer factors.
	f := bi(-1, 0, 1)
	g0 := modular.NewFieldPoly(5, []int64{-1, 1})
	h0 := modular.NewFieldPoly(5, []int64{1, 1})

	gLifted, hLifted, modulus := modular.LiftPair(f, g0, h0, 5, big.NewInt(30))

	require.True(t, modulus.Cmp(big.NewInt(30)) >= 0)

	gSym := modular.SymmetricMod(gLifted, modulus)
	hSym := modular.SymmetricMod(hLifted, modulus)

	product := mulInt(gSym, hSym)
	for i, c := range product {
		want := int64(0)
		if i < len(f) {
			want = f[i].Int64()
		}
		assert.Equal(t, want, c.Int64(), "coefficient %d of reconstructed product", i)
	}
}

func TestLiftPair_CubicFactorization(t *testing.T) {
	// f = (x-1)(x-2)(x+3) = x^3 + 0x^2 -7x +6, grouped as g0=(x-1), h0=(x-2)(x+3)=x^2+x-6
	f := bi(6, -7, 0, 1)
	g0 := modular.NewFieldPoly(7, []int64{-1, 1})     // x - 1
	h0 := modular.NewFieldPoly(7, []int64{-6, 1, 1})  // x^2 + x - 6

	gLifted, hLifted, modulus := modular.LiftPair(f, g0, h0, 7, big.NewInt(50))

	gSym := modular.SymmetricMod(gLifted, modulus)
	hSym := modular.SymmetricMod(hLifted, modulus)
	product := mulInt(gSym, hSym)

	for i, c := range product {
		want := int64(0)
		if i < len(f) {
			want = f[i].Int64()
		}
		assert.Equal(t, want, c.Int64(), "coefficient %d of reconstructed product", i)
	}
}
