package ray

import (
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// Ray is a half-line starting at Point and heading along Slope.  Slope is not
// required to be unit length; callers normalize it when they want t to
// measure distance.
type Ray struct {
	Point tuple.T
	Slope tuple.T
}

func New(point, slope tuple.T) Ray {
	return Ray{Point: point, Slope: slope}
}

// Eval returns the point at parameter t along the ray.
func (r Ray) Eval(t float64) tuple.T {
	return tuple.AddTT(r.Point, tuple.MulTS(r.Slope, t))
}

// Transform applies m to both the origin and the direction.  The direction
// is not renormalized, so t values stay comparable across spaces.
func (r Ray) Transform(m matrix.T) Ray {
	return Ray{
		Point: matrix.MulMT(m, r.Point),
		Slope: matrix.MulMT(m, r.Slope),
	}
}
