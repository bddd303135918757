// Package tuple implements homogeneous 4-component points and vectors.
//
// A T with w=1 is a point and a T with w=0 is a vector.  The arithmetic is
// component-wise over all four components, so point-point yields a vector,
// point+vector yields a point, and so on.
package tuple

import (
	"fmt"
	"math"

	"whitted/vmath/approx"
)

type T [4]float64

func New(x, y, z, w float64) T {
	return T{x, y, z, w}
}

func Point(x, y, z float64) T {
	return T{x, y, z, 1}
}

func Vector(x, y, z float64) T {
	return T{x, y, z, 0}
}

func (v T) X() float64 { return v[0] }
func (v T) Y() float64 { return v[1] }
func (v T) Z() float64 { return v[2] }
func (v T) W() float64 { return v[3] }

func (v T) IsPoint() bool {
	return approx.Equal(v[3], 1)
}

func (v T) IsVector() bool {
	return approx.Zero(v[3])
}

// Equal compares component-wise with approx.Epsilon tolerance.
func (v T) Equal(o T) bool {
	for i := range v {
		if !approx.Equal(v[i], o[i]) {
			return false
		}
	}
	return true
}

func (v T) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v[0], v[1], v[2], v[3])
}

// Norm is the Euclidean norm over all four components.
func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])
}

func Normalize(v T) T {
	return DivTS(v, v.Norm())
}

func AddTT(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
		a[3] + b[3],
	}
}

func SubTT(a, b T) T {
	return T{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
		a[3] - b[3],
	}
}

func Neg(a T) T {
	return T{-a[0], -a[1], -a[2], -a[3]}
}

func MulTS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
		a[3] * b,
	}
}

func DivTS(a T, b float64) T {
	return T{
		a[0] / b,
		a[1] / b,
		a[2] / b,
		a[3] / b,
	}
}

// IProd is the dot product over all four components.
func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// CProd is the cross product of two vectors.  It panics if either operand is
// not a vector.
func CProd(a, b T) T {
	if !a.IsVector() || !b.IsVector() {
		panic(fmt.Sprintf("tuple: cross product of non-vectors %v and %v", a, b))
	}
	return Vector(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	)
}

// Reflect reflects a around the normal n.
func Reflect(a, n T) T {
	return SubTT(a, MulTS(n, 2*IProd(a, n)))
}
