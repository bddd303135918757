// Package transform builds the 4×4 affine matrices used to place objects and
// cameras.
//
// When chaining, Compose(c, b, a) applied to a point means "first a, then b,
// then c".
package transform

import (
	"math"

	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

func Identity() matrix.T {
	return matrix.Identity()
}

func Translation(x, y, z float64) matrix.T {
	return matrix.New(4,
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	)
}

func Scaling(x, y, z float64) matrix.T {
	return matrix.New(4,
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	)
}

// RotationX rotates counter-clockwise by r radians about the x axis.
func RotationX(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.New(4,
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	)
}

func RotationY(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.New(4,
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	)
}

func RotationZ(r float64) matrix.T {
	s, c := math.Sincos(r)
	return matrix.New(4,
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Shearing moves each component in proportion to the other two; xy is the
// amount x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) matrix.T {
	return matrix.New(4,
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	)
}

// Compose multiplies the given matrices left to right, so the last one is
// applied first.
func Compose(ms ...matrix.T) matrix.T {
	result := matrix.Identity()
	for _, m := range ms {
		result = matrix.MulMM(result, m)
	}
	return result
}

// ViewTransform orients the world so that an eye at from looks toward to,
// with up roughly upward.
func ViewTransform(from, to, up tuple.T) matrix.T {
	forward := tuple.Normalize(tuple.SubTT(to, from))
	left := tuple.CProd(forward, tuple.Normalize(up))
	trueUp := tuple.CProd(left, forward)

	orientation := matrix.New(4,
		left[0], left[1], left[2], 0,
		trueUp[0], trueUp[1], trueUp[2], 0,
		-forward[0], -forward[1], -forward[2], 0,
		0, 0, 0, 1,
	)

	return matrix.MulMM(orientation, Translation(-from[0], -from[1], -from[2]))
}
