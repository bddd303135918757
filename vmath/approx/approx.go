// Package approx holds the tolerance used everywhere the renderer compares
// floating point values.
package approx

import "math"

// Epsilon is the absolute tolerance for approximate equality.
const Epsilon = 1e-4

// Equal reports whether a and b differ by less than Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Zero reports whether a is within Epsilon of zero.
func Zero(a float64) bool {
	return math.Abs(a) < Epsilon
}
