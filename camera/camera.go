package camera

import (
	"context"
	"math"

	"whitted/canvas"
	"whitted/ray"
	"whitted/scene"
	"whitted/vmath/matrix"
	"whitted/vmath/tuple"
)

// Camera maps pixel coordinates to primary rays.
type Camera interface {
	// RayForPixel returns the world-space ray through the center of pixel
	// (px, py), with y growing downward.
	RayForPixel(px, py int) ray.Ray

	// Size returns the image dimensions in pixels.
	Size() (hsize, vsize int)
}

// PinholeCamera looks down -z of its own eye space from the origin, through
// a canvas one unit away.  Transform takes world space to eye space.
type PinholeCamera struct {
	HSize, VSize int
	FieldOfView  float64

	// Derived once at construction.
	HalfWidth, HalfHeight float64
	PixelSize             float64

	transform matrix.T
	inverse   matrix.T
}

var _ Camera = (*PinholeCamera)(nil)

// NewPinholeCamera returns a camera with the identity transform.
// fieldOfView is the full horizontal angle (or vertical, for portrait
// images) in radians.
func NewPinholeCamera(hsize, vsize int, fieldOfView float64) *PinholeCamera {
	c := &PinholeCamera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.HalfWidth = halfView
		c.HalfHeight = halfView / aspect
	} else {
		c.HalfWidth = halfView * aspect
		c.HalfHeight = halfView
	}
	c.PixelSize = 2 * c.HalfWidth / float64(hsize)

	c.SetTransform(matrix.Identity())
	return c
}

// SetTransform sets the world-to-eye transform, usually built with
// transform.ViewTransform.  It panics if m is not invertible.
func (c *PinholeCamera) SetTransform(m matrix.T) {
	c.transform = m
	c.inverse = matrix.Inverse(m)
}

func (c *PinholeCamera) Transform() matrix.T {
	return c.transform
}

func (c *PinholeCamera) Size() (int, int) {
	return c.HSize, c.VSize
}

func (c *PinholeCamera) RayForPixel(px, py int) ray.Ray {
	xOffset := (float64(px) + 0.5) * c.PixelSize
	yOffset := (float64(py) + 0.5) * c.PixelSize

	// The camera looks toward -z, so +x is to the left.
	worldX := c.HalfWidth - xOffset
	worldY := c.HalfHeight - yOffset

	pixel := matrix.MulMT(c.inverse, tuple.Point(worldX, worldY, -1))
	origin := matrix.MulMT(c.inverse, tuple.Point(0, 0, 0))

	return ray.New(origin, tuple.Normalize(tuple.SubTT(pixel, origin)))
}

// Render draws s as seen by c.  See RenderScene.
func (c *PinholeCamera) Render(ctx context.Context, s *scene.Scene, opts ...RenderOpt) *canvas.Canvas {
	return RenderScene(ctx, s, c, opts...)
}
