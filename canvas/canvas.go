// Package canvas is the raster sink for renders: a grid of clamped colors.
package canvas

import (
	"whitted/color"
)

// Canvas stores Width×Height colors row-major, pixel (x, y) at
// y*Width + x.  Every stored color is clamped to [0, 1].
type Canvas struct {
	Width, Height int
	Pixels        []color.T
}

// New returns a black canvas.
func New(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]color.T, width*height),
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return 0 <= x && x < c.Width && 0 <= y && y < c.Height
}

// WritePixel clamps col and stores it at (x, y).  Writes outside the canvas
// are dropped.
func (c *Canvas) WritePixel(x, y int, col color.T) {
	if !c.inBounds(x, y) {
		return
	}
	c.Pixels[y*c.Width+x] = color.Clamp(col)
}

// PixelAt returns the color at (x, y).  It panics if (x, y) is outside the
// canvas.
func (c *Canvas) PixelAt(x, y int) color.T {
	if !c.inBounds(x, y) {
		panic("canvas: PixelAt out of bounds")
	}
	return c.Pixels[y*c.Width+x]
}

// Cut copies the rectangle [colSrc, colLim)×[rowSrc, rowLim) into a new
// canvas.
func (c *Canvas) Cut(rowSrc, rowLim, colSrc, colLim int) *Canvas {
	dst := New(colLim-colSrc, rowLim-rowSrc)

	dstIndex := 0
	for r := rowSrc; r < rowLim; r++ {
		for col := colSrc; col < colLim; col++ {
			dst.Pixels[dstIndex] = c.Pixels[r*c.Width+col]
			dstIndex++
		}
	}

	return dst
}

// Paste copies src into c with its top-left corner at (colSrc, rowSrc).
// Parts of src that fall outside c are dropped.
func (c *Canvas) Paste(src *Canvas, rowSrc, colSrc int) {
	for r := 0; r < src.Height; r++ {
		for col := 0; col < src.Width; col++ {
			x, y := colSrc+col, rowSrc+r
			if !c.inBounds(x, y) {
				continue
			}
			c.Pixels[y*c.Width+x] = src.Pixels[r*src.Width+col]
		}
	}
}
