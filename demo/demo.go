// Package demo draws the small warm-up pictures that exercise the numeric
// core without the full renderer.
package demo

import (
	"math"

	"whitted/canvas"
	"whitted/color"
	"whitted/contact"
	"whitted/ray"
	"whitted/transform"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// Body is a point mass moving through an Environment.
type Body struct {
	Position tuple.T
	Velocity tuple.T
}

type Environment struct {
	Gravity tuple.T
	Wind    tuple.T
}

// Tick advances b by one time step.
func Tick(env Environment, b Body) Body {
	return Body{
		Position: tuple.AddTT(b.Position, b.Velocity),
		Velocity: tuple.AddTT(tuple.AddTT(b.Velocity, env.Gravity), env.Wind),
	}
}

// Projectile plots the path of a body launched up and to the right until it
// falls back to the ground.  The canvas y axis points down, so heights are
// flipped; points off the canvas are dropped.
func Projectile(width, height int) *canvas.Canvas {
	c := canvas.New(width, height)

	b := Body{
		Position: tuple.Point(0, 1, 0),
		Velocity: tuple.MulTS(tuple.Normalize(tuple.Vector(1, 1.8, 0)), 11.25),
	}
	env := Environment{
		Gravity: tuple.Vector(0, -0.1, 0),
		Wind:    tuple.Vector(-0.01, 0, 0),
	}

	for b.Position.Y() > 0 {
		b = Tick(env, b)
		x := int(math.Round(b.Position.X()))
		y := height - int(math.Round(b.Position.Y()))
		c.WritePixel(x, y, color.Red())
	}
	return c
}

// Clock marks the twelve hour positions on a size×size canvas, looking down
// the y axis at a dial of radius 3/8 size.
func Clock(size int) *canvas.Canvas {
	c := canvas.New(size, size)
	half := float64(size) / 2

	twelve := tuple.Point(0, 0, 0.75)
	for hour := 0; hour < 12; hour++ {
		p := matrix.MulMT(transform.RotationY(float64(hour)*math.Pi/6), twelve)
		x := int(math.Round(half*p.X() + half))
		y := size - int(math.Round(half*p.Z()+half))
		c.WritePixel(x, y, color.White())
	}
	return c
}

// Silhouette casts a ray from (0, 0, -5) through each pixel of a 7×7 wall at
// z = 10 and paints the pixel red wherever the ray hits shape.
func Silhouette(size int, shape contact.Shape) *canvas.Canvas {
	const (
		wallZ    = 10.0
		wallSize = 7.0
	)

	c := canvas.New(size, size)
	origin := tuple.Point(0, 0, -5)
	pixelSize := wallSize / float64(size)
	half := wallSize / 2

	for y := 0; y < size; y++ {
		worldY := half - pixelSize*float64(y)
		for x := 0; x < size; x++ {
			worldX := -half + pixelSize*float64(x)
			target := tuple.Point(worldX, worldY, wallZ)

			r := ray.New(origin, tuple.Normalize(tuple.SubTT(target, origin)))
			if _, ok := shape.Intersect(r).Hit(); ok {
				c.WritePixel(x, y, color.Red())
			}
		}
	}
	return c
}
