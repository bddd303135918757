// Package material implements Phong surface parameters and shading.
package material

import (
	"math"

	"whitted/color"
	"whitted/light"
	"whitted/vmath/approx"
	"whitted/vmath/tuple"
)

// Phong holds the classical ambient/diffuse/specular reflectance
// coefficients of a surface.
type Phong struct {
	Color     color.T
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
}

func Default() Phong {
	return Phong{
		Color:     color.White(),
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200,
	}
}

func (m Phong) Equal(o Phong) bool {
	return m.Color.Equal(o.Color) &&
		approx.Equal(m.Ambient, o.Ambient) &&
		approx.Equal(m.Diffuse, o.Diffuse) &&
		approx.Equal(m.Specular, o.Specular) &&
		approx.Equal(m.Shininess, o.Shininess)
}

// Lighting evaluates the Phong model at point for an eye along eyev and a
// surface normal normalv.  The result is not clamped.
func (m Phong) Lighting(l light.Point, point, eyev, normalv tuple.T) color.T {
	effectiveColor := color.MulCC(m.Color, l.Intensity)
	lightv := tuple.Normalize(tuple.SubTT(l.Position, point))
	ambient := color.MulCS(effectiveColor, m.Ambient)

	lightDotNormal := tuple.IProd(lightv, normalv)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface.
		return ambient
	}

	diffuse := color.MulCS(effectiveColor, m.Diffuse*lightDotNormal)

	specular := color.Black()
	reflectv := tuple.Reflect(tuple.Neg(lightv), normalv)
	reflectDotEye := tuple.IProd(reflectv, eyev)
	if reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = color.MulCS(l.Intensity, m.Specular*factor)
	}

	return color.AddCC(color.AddCC(ambient, diffuse), specular)
}
