// Package matrix implements dense square matrices of arbitrary side.
//
// Only sides 2, 3, and 4 occur in the renderer.  Dimension mismatches and
// inverting a singular matrix are programming errors and panic.
package matrix

import (
	"fmt"
	"math"
	"strings"

	"whitted/vmath/approx"
	"whitted/vmath/tuple"
)

// T is an N×N matrix stored row-major in Elts.
type T struct {
	N    int
	Elts []float64
}

// New builds an n×n matrix from n*n elements listed row by row.
func New(n int, elts ...float64) T {
	if len(elts) != n*n {
		panic(fmt.Sprintf("matrix: %d elements given for a %dx%d matrix", len(elts), n, n))
	}
	m := T{N: n, Elts: make([]float64, n*n)}
	copy(m.Elts, elts)
	return m
}

func zero(n int) T {
	return T{N: n, Elts: make([]float64, n*n)}
}

// Identity returns the 4×4 identity.
func Identity() T {
	return New(4,
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

func (m T) At(r, c int) float64 {
	return m.Elts[r*m.N+c]
}

func (m T) set(r, c int, v float64) {
	m.Elts[r*m.N+c] = v
}

// Equal compares element-wise with approx.Epsilon tolerance.
func (m T) Equal(o T) bool {
	if m.N != o.N || len(m.Elts) != len(o.Elts) {
		return false
	}
	for i := range m.Elts {
		if !approx.Equal(m.Elts[i], o.Elts[i]) {
			return false
		}
	}
	return true
}

func (m T) String() string {
	b := &strings.Builder{}
	for r := 0; r < m.N; r++ {
		b.WriteString("|")
		for c := 0; c < m.N; c++ {
			fmt.Fprintf(b, " %9.5f", m.At(r, c))
		}
		b.WriteString(" |\n")
	}
	return b.String()
}

func MulMM(a, b T) T {
	if a.N != b.N {
		panic(fmt.Sprintf("matrix: multiplying %dx%d by %dx%d", a.N, a.N, b.N, b.N))
	}
	n := a.N
	result := zero(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				result.Elts[i*n+j] += a.Elts[i*n+k] * b.Elts[k*n+j]
			}
		}
	}
	return result
}

// MulMT multiplies a 4×4 matrix by a tuple taken as the column vector
// (x, y, z, w).
func MulMT(a T, b tuple.T) tuple.T {
	if a.N != 4 {
		panic(fmt.Sprintf("matrix: multiplying %dx%d matrix by a tuple", a.N, a.N))
	}
	e := a.Elts
	return tuple.T{
		e[0]*b[0] + e[1]*b[1] + e[2]*b[2] + e[3]*b[3],
		e[4]*b[0] + e[5]*b[1] + e[6]*b[2] + e[7]*b[3],
		e[8]*b[0] + e[9]*b[1] + e[10]*b[2] + e[11]*b[3],
		e[12]*b[0] + e[13]*b[1] + e[14]*b[2] + e[15]*b[3],
	}
}

func Transpose(m T) T {
	transpose := zero(m.N)
	for r := 0; r < m.N; r++ {
		for c := 0; c < m.N; c++ {
			transpose.Elts[c*m.N+r] = m.Elts[r*m.N+c]
		}
	}
	return transpose
}

// Submatrix returns the (N-1)×(N-1) matrix left after deleting row r and
// column c.
func (m T) Submatrix(r, c int) T {
	result := zero(m.N - 1)
	dst := 0
	for i := 0; i < m.N; i++ {
		if i == r {
			continue
		}
		for j := 0; j < m.N; j++ {
			if j == c {
				continue
			}
			result.Elts[dst] = m.Elts[i*m.N+j]
			dst++
		}
	}
	return result
}

func (m T) Minor(r, c int) float64 {
	return m.Submatrix(r, c).Determinant()
}

func (m T) Cofactor(r, c int) float64 {
	minor := m.Minor(r, c)
	if (r+c)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant expands along row 0, bottoming out at the 2×2 formula.
func (m T) Determinant() float64 {
	switch m.N {
	case 0:
		return 1
	case 1:
		return m.Elts[0]
	case 2:
		return m.Elts[0]*m.Elts[3] - m.Elts[1]*m.Elts[2]
	}

	det := 0.0
	for c := 0; c < m.N; c++ {
		det += m.Elts[c] * m.Cofactor(0, c)
	}
	return det
}

func (m T) Invertible() bool {
	return math.Abs(m.Determinant()) > approx.Epsilon
}

// Inverse divides the transposed cofactor matrix by the determinant.  It
// panics if m is not invertible.
func Inverse(m T) T {
	det := m.Determinant()
	if math.Abs(det) <= approx.Epsilon {
		panic(fmt.Sprintf("matrix: inverting singular matrix (det=%g)\n%v", det, m))
	}

	inv := zero(m.N)
	for r := 0; r < m.N; r++ {
		for c := 0; c < m.N; c++ {
			// Note the swapped indices.
			inv.set(c, r, m.Cofactor(r, c)/det)
		}
	}
	return inv
}
