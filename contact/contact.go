// Package contact records where rays meet shapes and selects the visible hit.
package contact

import (
	"sort"

	"whitted/material"
	"whitted/ray"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// Shape is anything the scene can intersect and shade.
type Shape interface {
	// Intersect returns every crossing of the world-space ray r with the
	// shape, in ascending order of T.
	Intersect(r ray.Ray) Contacts

	// NormalAt returns the unit world-space surface normal at a world-space
	// point on the surface.
	NormalAt(p tuple.T) tuple.T

	Material() material.Phong
	Transform() matrix.T
}

// Contact is a single crossing of a ray with Object at parameter T.
type Contact struct {
	T      float64
	Object Shape
}

func New(t float64, object Shape) Contact {
	return Contact{T: t, Object: object}
}

// Contacts is a collection of contacts, normally sorted by ascending T.
type Contacts []Contact

// Intersections aggregates contacts into a collection sorted by T.
func Intersections(cs ...Contact) Contacts {
	result := make(Contacts, len(cs))
	copy(result, cs)
	result.Sort()
	return result
}

func (cs Contacts) Sort() {
	sort.SliceStable(cs, func(i, j int) bool {
		return cs[i].T < cs[j].T
	})
}

// Hit returns the contact with the smallest non-negative T.  The second
// return is false if every contact lies behind the ray origin.
func (cs Contacts) Hit() (Contact, bool) {
	best := -1
	for i, c := range cs {
		if c.T < 0 {
			continue
		}
		if best == -1 || c.T < cs[best].T {
			best = i
		}
	}
	if best == -1 {
		return Contact{}, false
	}
	return cs[best], true
}

// Computations is the shading state for one contact.
type Computations struct {
	T       float64
	Object  Shape
	Point   tuple.T
	EyeV    tuple.T
	NormalV tuple.T

	// Inside is set when the ray originates inside Object; NormalV is then
	// flipped to face the eye.
	Inside bool
}

// Prepare computes the shading state of c as seen along r.
func (c Contact) Prepare(r ray.Ray) Computations {
	point := r.Eval(c.T)
	comps := Computations{
		T:       c.T,
		Object:  c.Object,
		Point:   point,
		EyeV:    tuple.Neg(r.Slope),
		NormalV: c.Object.NormalAt(point),
	}

	if tuple.IProd(comps.NormalV, comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = tuple.Neg(comps.NormalV)
	}

	return comps
}
