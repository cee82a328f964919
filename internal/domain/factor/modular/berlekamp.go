package modular

// BerlekampMatrix builds Q in F_p^{n x n} whose row i holds the
// coefficients of x^{p*i} mod f(x).
func BerlekampMatrix(f FieldPoly) [][]int64 {
	n := f.Degree()
	rows := make([][]int64, n)
	x := FieldPoly{P: f.P, Coeffs: []int64{0, 1}}
	for i := 0; i < n; i++ {
		xpi := x.ModPow(int64(i)*f.P, f)
		row := make([]int64, n)
		for j := 0; j <= xpi.Degree() && j < n; j++ {
			row[j] = xpi.Coeff(j)
		}
		rows[i] = row
	}
	return rows
}

// NullSpace computes a basis for the null space of (Q - I) over F_p via
// Gauss-Jordan elimination. Returns the basis as coefficient vectors
// (constant-first, length n).
func NullSpace(q [][]int64, p int64) [][]int64 {
	n := len(q)
	m := make([][]int64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]int64, n)
		copy(m[i], q[i])
		m[i][i] = mod(m[i][i]-1, p)
	}

	pivotCol := make([]int, 0, n)
	row := 0
	colToPivotRow := make(map[int]int)
	for col := 0; col < n && row < n; col++ {
		pivot := -1
		for r := row; r < n; r++ {
			if m[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		m[row], m[pivot] = m[pivot], m[row]
		inv := modInverse(m[row][col], p)
		for c := 0; c < n; c++ {
			m[row][c] = mod(m[row][c]*inv, p)
		}
		for r := 0; r < n; r++ {
			if r == row || m[r][col] == 0 {
				continue
			}
			factor := m[r][col]
			for c := 0; c < n; c++ {
				m[r][c] = mod(m[r][c]-factor*m[row][c], p)
			}
		}
		colToPivotRow[col] = row
		pivotCol = append(pivotCol, col)
		row++
	}

	isPivot := make([]bool, n)
	for _, c := range pivotCol {
		isPivot[c] = true
	}

	var basis [][]int64
	for free := 0; free < n; free++ {
		if isPivot[free] {
			continue
		}
		vec := make([]int64, n)
		vec[free] = 1
		for col, r := range colToPivotRow {
			vec[col] = mod(-m[r][free], p)
		}
		basis = append(basis, vec)
	}
	return basis
}

// Split recursively factors f over F_p into irreducibles, given the
// Berlekamp null-space basis.
func Split(f FieldPoly, basis [][]int64) []FieldPoly {
	if f.Degree() <= 0 {
		return nil
	}
	if len(basis) <= 1 {
		return []FieldPoly{f.Monic()}
	}
	target := len(basis)
	factors := []FieldPoly{f}
	for _, v := range basis {
		vPoly := FieldPoly{P: f.P, Coeffs: append([]int64(nil), v...)}.Trim()
		if vPoly.Degree() <= 0 {
			continue
		}
		if len(factors) >= target {
			break
		}
		var next []FieldPoly
		for _, cur := range factors {
			if cur.Degree() <= 1 {
				next = append(next, cur)
				continue
			}
			split := false
			for a := int64(0); a < f.P; a++ {
				shifted := vPoly.Sub(FieldPoly{P: f.P, Coeffs: []int64{a}})
				g := GCD(cur, shifted)
				if g.Degree() > 0 && g.Degree() < cur.Degree() {
					q, _ := cur.DivMod(g)
					next = append(next, g.Monic(), q.Monic())
					split = true
					break
				}
			}
			if !split {
				next = append(next, cur)
			}
		}
		factors = next
	}
	return factors
}
