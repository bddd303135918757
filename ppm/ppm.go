// Package ppm writes canvases as plain-text (P3) portable pixmaps.
package ppm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"whitted/canvas"
)

// MaxLineLength is the longest physical line Encode will emit.
const MaxLineLength = 70

// lineWriter buffers one logical line of space-separated values and breaks
// it at the last space that keeps each physical line within MaxLineLength.
type lineWriter struct {
	w   *bufio.Writer
	col int
}

func (l *lineWriter) value(v uint8) {
	s := strconv.Itoa(int(v))
	if l.col != 0 {
		if l.col+1+len(s) > MaxLineLength {
			l.w.WriteByte('\n')
			l.col = 0
		} else {
			l.w.WriteByte(' ')
			l.col++
		}
	}
	l.w.WriteString(s)
	l.col += len(s)
}

func (l *lineWriter) endLine() {
	l.w.WriteByte('\n')
	l.col = 0
}

// Encode writes c to w.  Each image row starts a new line; long rows wrap.
func Encode(w io.Writer, c *canvas.Canvas) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return fmt.Errorf("while writing header: %w", err)
	}

	lw := &lineWriter{w: bw}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			b := c.PixelAt(x, y).Bytes()
			lw.value(b[0])
			lw.value(b[1])
			lw.value(b[2])
		}
		lw.endLine()
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing pixel data: %w", err)
	}
	return nil
}

func Marshal(c *canvas.Canvas) []byte {
	buf := &bytes.Buffer{}
	// Writes to a bytes.Buffer never fail.
	Encode(buf, c)
	return buf.Bytes()
}
