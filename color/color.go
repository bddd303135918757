// Package color implements unclamped RGB arithmetic.
package color

import (
	"fmt"
	"math"

	"whitted/vmath/approx"
)

type T [3]float64

func New(r, g, b float64) T {
	return T{r, g, b}
}

func Black() T {
	return T{0, 0, 0}
}

func White() T {
	return T{1, 1, 1}
}

func Red() T {
	return T{1, 0, 0}
}

func (c T) R() float64 { return c[0] }
func (c T) G() float64 { return c[1] }
func (c T) B() float64 { return c[2] }

func (c T) Equal(o T) bool {
	return approx.Equal(c[0], o[0]) && approx.Equal(c[1], o[1]) && approx.Equal(c[2], o[2])
}

func (c T) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c[0], c[1], c[2])
}

func AddCC(a, b T) T {
	return T{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func SubCC(a, b T) T {
	return T{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func MulCS(a T, s float64) T {
	return T{a[0] * s, a[1] * s, a[2] * s}
}

// MulCC is the Hadamard (component-wise) product.
func MulCC(a, b T) T {
	return T{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Clamp limits every channel to [0, 1].
func Clamp(c T) T {
	return T{clamp01(c[0]), clamp01(c[1]), clamp01(c[2])}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Bytes maps each channel of the clamped color to round(c*255).
func (c T) Bytes() [3]uint8 {
	cl := Clamp(c)
	return [3]uint8{
		uint8(math.Round(cl[0] * 255)),
		uint8(math.Round(cl[1] * 255)),
		uint8(math.Round(cl[2] * 255)),
	}
}
