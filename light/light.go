package light

import (
	"whitted/color"
	"whitted/vmath/tuple"
)

// Point is a light with no size, emitting Intensity from Position.
type Point struct {
	Position  tuple.T
	Intensity color.T
}

func NewPoint(position tuple.T, intensity color.T) Point {
	return Point{
		Position:  position,
		Intensity: intensity,
	}
}
