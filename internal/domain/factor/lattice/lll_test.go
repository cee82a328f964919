package lattice_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Stasshe/Latexium-sub002/internal/domain/factor/lattice"
)

func vec(xs ...int64) []*big.Int {
	out := make([]*big.Int, len(xs))
	for i, x := range xs {
		out[i] = big.NewInt(x)
	}
	return out
}

// det3 computes the determinant of a 3x3 integer matrix given as rows.
func det3(rows [][]*big.Int) *big.Int {
	a, b, c := rows[0][0], rows[0][1], rows[0][2]
	d, e, f := rows[1][0], rows[1][1], rows[1][2]
	g, h, i := rows[2][0], rows[2][1], rows[2][2]

	t1 := new(big.Int).Mul(a, new(big.Int).Sub(new(big.Int).Mul(e, i), new(big.Int).Mul(f, h)))
	t2 := new(big.Int).Mul(b, new(big.Int).Sub(new(big.Int).Mul(d, i), new(big.Int).Mul(f, g)))
	t3 := new(big.Int).Mul(c, new(big.Int).Sub(new(big.Int).Mul(d, h), new(big.Int).Mul(e, g)))
	return new(big.Int).Sub(new(big.Int).Add(t1, t3), t2)
}

func normSq(v []*big.Int) *big.Int {
	acc := big.NewInt(0)
	for _, c := range v {
		acc.Add(acc, new(big.Int).Mul(c, c))
	}
	return acc
}

func TestReduce_PreservesLatticeDeterminant(t *testing.T) {
	basis := [][]*big.Int{
		vec(1, 1, 1),
		vec(-1, 0, 2),
		vec(3, 5, 6),
	}
	reduced := lattice.Reduce(basis, lattice.Delta)

	wantDet := new(big.Int).Abs(det3(basis))
	gotDet := new(big.Int).Abs(det3(reduced))
	assert.Equal(t, wantDet, gotDet, "LLL reduction must preserve the lattice (determinant up to sign)")
}

func TestReduce_ShortensAnObviouslyBadBasis(t *testing.T) {
	basis := [][]*big.Int{
		vec(1, 1, 1),
		vec(-1, 0, 2),
		vec(3, 5, 6),
	}
	reduced := lattice.Reduce(basis, lattice.Delta)

	firstOriginalNorm := normSq(basis[0])
	shortestReduced := normSq(reduced[0])
	for _, v := range reduced[1:] {
		if n := normSq(v); n.Cmp(shortestReduced) < 0 {
			shortestReduced = n
		}
	}
	assert.True(t, shortestReduced.Cmp(firstOriginalNorm) <= 0 || shortestReduced.Cmp(normSq(basis[2])) <= 0,
		"reduced basis should contain a vector no longer than some vector already in the original basis")
}

func TestReduce_AlreadyReducedOrthogonalBasis(t *testing.T) {
	basis := [][]*big.Int{
		vec(1, 0, 0),
		vec(0, 1, 0),
		vec(0, 0, 1),
	}
	reduced := lattice.Reduce(basis, lattice.Delta)
	assert.Equal(t, big.NewInt(1), normSq(reduced[0]))
	assert.Equal(t, big.NewInt(1), normSq(reduced[1]))
	assert.Equal(t, big.NewInt(1), normSq(reduced[2]))
}
