package geometry

import (
	"math"

	"whitted/contact"
	"whitted/material"
	"whitted/ray"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// Sphere is a unit sphere centered at the origin of its model space, placed
// in the world by an affine transform.
type Sphere struct {
	// The transform that takes model space to world space.
	modelToWorld matrix.T

	// The transform that takes a ray from world space to model space.
	worldToModel matrix.T

	// The linear map that takes normal vectors from model space to world
	// space: the transpose of worldToModel.
	modelToWorldNormals matrix.T

	material material.Phong
}

var _ contact.Shape = (*Sphere)(nil)

// NewSphere returns a sphere at the origin with the default material.
func NewSphere() *Sphere {
	s := &Sphere{material: material.Default()}
	s.SetTransform(matrix.Identity())
	return s
}

// SetTransform places the sphere.  It panics if m is not invertible.
func (s *Sphere) SetTransform(m matrix.T) {
	s.modelToWorld = m
	s.worldToModel = matrix.Inverse(m)
	s.modelToWorldNormals = matrix.Transpose(s.worldToModel)
}

func (s *Sphere) SetMaterial(m material.Phong) {
	s.material = m
}

func (s *Sphere) Transform() matrix.T {
	return s.modelToWorld
}

func (s *Sphere) Material() material.Phong {
	return s.material
}

// Equal compares transform and material; two spheres built the same way are
// equal even if they are distinct objects.
func (s *Sphere) Equal(o *Sphere) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.modelToWorld.Equal(o.modelToWorld) && s.material.Equal(o.material)
}

// Intersect solves the ray/sphere quadratic in model space.  A tangent ray
// yields two contacts with equal T.
func (s *Sphere) Intersect(worldRay ray.Ray) contact.Contacts {
	r := worldRay.Transform(s.worldToModel)

	sphereToRay := tuple.SubTT(r.Point, tuple.Point(0, 0, 0))
	a := tuple.IProd(r.Slope, r.Slope)
	b := 2 * tuple.IProd(r.Slope, sphereToRay)
	c := tuple.IProd(sphereToRay, sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	root := math.Sqrt(discriminant)
	return contact.Contacts{
		contact.New((-b-root)/(2*a), s),
		contact.New((-b+root)/(2*a), s),
	}
}

func (s *Sphere) NormalAt(worldPoint tuple.T) tuple.T {
	modelPoint := matrix.MulMT(s.worldToModel, worldPoint)
	modelNormal := tuple.SubTT(modelPoint, tuple.Point(0, 0, 0))
	worldNormal := matrix.MulMT(s.modelToWorldNormals, modelNormal)

	// The transpose carries the translation column into w.
	worldNormal[3] = 0

	return tuple.Normalize(worldNormal)
}
