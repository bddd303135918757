// Package scene holds the shapes and light that make up a world, and answers
// "what color does this ray see?".
package scene

import (
	"whitted/color"
	"whitted/contact"
	"whitted/geometry"
	"whitted/light"
	"whitted/material"
	"whitted/ray"
	"whitted/transform"
	"whitted/vmath/tuple"
)

// Scene is read-only while a render is in progress and may be shared by
// any number of goroutines.
type Scene struct {
	// Light is nil for an unlit scene.
	Light *light.Point

	Objects []contact.Shape
}

// New returns an empty, unlit scene.
func New() *Scene {
	return &Scene{}
}

// Default returns the two nested spheres lit from the upper left that most
// shading tests are written against.
func Default() *Scene {
	outer := geometry.NewSphere()
	outerMaterial := material.Default()
	outerMaterial.Color = color.New(0.8, 1.0, 0.6)
	outerMaterial.Diffuse = 0.7
	outerMaterial.Specular = 0.2
	outer.SetMaterial(outerMaterial)

	inner := geometry.NewSphere()
	inner.SetTransform(transform.Scaling(0.5, 0.5, 0.5))

	s := New()
	s.SetLight(light.NewPoint(tuple.Point(-10, 10, -10), color.New(1, 1, 1)))
	s.AddObject(outer)
	s.AddObject(inner)
	return s
}

func (s *Scene) SetLight(l light.Point) {
	s.Light = &l
}

// AddObject is a convenience function to register a shape and get its index.
func (s *Scene) AddObject(o contact.Shape) int {
	s.Objects = append(s.Objects, o)
	return len(s.Objects) - 1
}

// Intersect collects the contacts of r with every object, sorted by T.
func (s *Scene) Intersect(r ray.Ray) contact.Contacts {
	var xs contact.Contacts
	for _, o := range s.Objects {
		xs = append(xs, o.Intersect(r)...)
	}
	xs.Sort()
	return xs
}

// ShadeHit evaluates the object's material at the precomputed contact.  An
// unlit scene shades everything black.
func (s *Scene) ShadeHit(comps contact.Computations) color.T {
	if s.Light == nil {
		return color.Black()
	}
	return comps.Object.Material().Lighting(*s.Light, comps.Point, comps.EyeV, comps.NormalV)
}

// ColorAt returns the color seen along r, or black if r hits nothing.
func (s *Scene) ColorAt(r ray.Ray) color.T {
	hit, ok := s.Intersect(r).Hit()
	if !ok {
		return color.Black()
	}
	return s.ShadeHit(hit.Prepare(r))
}
