package canvas

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"whitted/color"
)

func TestNew(t *testing.T) {
	c := New(10, 20)
	if c.Width != 10 || c.Height != 20 {
		t.Errorf("Got %dx%d canvas, want 10x20", c.Width, c.Height)
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if diff := cmp.Diff(c.PixelAt(x, y), color.Black()); diff != "" {
				t.Fatalf("Pixel (%d, %d) not black; diff (-got +want)\n%s", x, y, diff)
			}
		}
	}
}

func TestWritePixel(t *testing.T) {
	c := New(10, 20)
	c.WritePixel(2, 3, color.Red())

	if diff := cmp.Diff(c.PixelAt(2, 3), color.Red()); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(c.Pixels[3*10+2], color.Red()); diff != "" {
		t.Errorf("Pixel stored at wrong index; diff (-got +want)\n%s", diff)
	}
}

func TestWritePixelClamps(t *testing.T) {
	c := New(5, 3)
	c.WritePixel(0, 0, color.New(1.5, 0, 0))
	c.WritePixel(4, 2, color.New(-0.5, 0, 1))

	if diff := cmp.Diff(c.PixelAt(0, 0), color.New(1, 0, 0)); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(c.PixelAt(4, 2), color.New(0, 0, 1)); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}

func TestWritePixelOutOfBounds(t *testing.T) {
	c := New(4, 3)
	before := append([]color.T(nil), c.Pixels...)

	for _, p := range [][2]int{{4, 0}, {0, 3}, {-1, 0}, {0, -1}, {100, 100}} {
		c.WritePixel(p[0], p[1], color.White())
	}

	if diff := cmp.Diff(c.Pixels, before); diff != "" {
		t.Errorf("Out of bounds write modified canvas; diff (-got +want)\n%s", diff)
	}
}

func TestCutPaste(t *testing.T) {
	c := New(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c.WritePixel(x, y, color.New(float64(x)/4, float64(y)/4, 0))
		}
	}

	sub := c.Cut(1, 3, 2, 4)
	if sub.Width != 2 || sub.Height != 2 {
		t.Fatalf("Got %dx%d cut, want 2x2", sub.Width, sub.Height)
	}
	if diff := cmp.Diff(sub.PixelAt(0, 0), c.PixelAt(2, 1)); diff != "" {
		t.Errorf("Bad cut origin; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(sub.PixelAt(1, 1), c.PixelAt(3, 2)); diff != "" {
		t.Errorf("Bad cut corner; diff (-got +want)\n%s", diff)
	}

	dst := New(4, 4)
	dst.Paste(sub, 1, 2)
	if diff := cmp.Diff(dst.Cut(1, 3, 2, 4), sub); diff != "" {
		t.Errorf("Cut/Paste did not round-trip; diff (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(dst.PixelAt(0, 0), color.Black()); diff != "" {
		t.Errorf("Paste touched pixels outside the target; diff (-got +want)\n%s", diff)
	}

	// Overhanging paste is clipped.
	dst.Paste(sub, 3, 3)
	if diff := cmp.Diff(dst.PixelAt(3, 3), sub.PixelAt(0, 0)); diff != "" {
		t.Errorf("diff (-got +want)\n%s", diff)
	}
}
