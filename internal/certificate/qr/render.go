package qr

import "certpdf/internal/certificate/canvas"

// ModuleSize is the side of one module when m is drawn size points wide.
// It is kept fractional; vector output needs no pixel rounding.
func ModuleSize(m Matrix, size float64) float64 {
	return size / float64(m.Size())
}

// Render fills one square per dark module. The module at (row, col) is placed at
// (origin.X + col*moduleSize, origin.Y - row*moduleSize): rows grow downward in
// the matrix while page-space y grows upward. With padding > 0 a frame is stroked
// around the symbol bounds expanded by padding. Nothing is drawn when the matrix
// is empty or not square. Colors and line width are taken from the canvas.
func Render(c canvas.Canvas, m Matrix, origin canvas.Point, size, padding float64) error {
	if err := m.Validate(); err != nil {
		return err
	}

	ms := ModuleSize(m, size)
	for row, cells := range m {
		for col, dark := range cells {
			if !dark {
				continue
			}
			c.FillRect(canvas.Point{X: origin.X + float64(col)*ms, Y: origin.Y - float64(row)*ms}, ms, ms)
		}
	}

	if padding > 0 {
		bottom := origin.Y + ms - size
		c.StrokeRect(canvas.Point{X: origin.X - padding, Y: bottom - padding}, size+2*padding, size+2*padding)
	}
	return nil
}

// Origin returns the anchor Render needs to fill the square whose bottom-left
// corner is bottomLeft.
func Origin(m Matrix, bottomLeft canvas.Point, size float64) canvas.Point {
	return canvas.Point{X: bottomLeft.X, Y: bottomLeft.Y + size - ModuleSize(m, size)}
}
