// Package svg renders certificate canvases as SVG previews with ajstarks/svgo.
//
// svgo takes integer coordinates, so page-space points are scaled by Scale
// before rounding; the viewBox carries the scale back out.
package svg

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"certpdf/internal/certificate/canvas"
)

// Scale is the number of SVG user units per point.
const Scale = 10

type Canvas struct {
	*canvas.State
	doc    *svgo.SVG
	buf    *bytes.Buffer
	closed bool
}

var _ canvas.Canvas = (*Canvas)(nil)

// New starts an SVG document sized to an A4 landscape page.
func New() *Canvas {
	buf := &bytes.Buffer{}
	doc := svgo.New(buf)
	size := canvas.A4Landscape
	doc.Startview(int(math.Round(size.Width)), int(math.Round(size.Height)), 0, 0, u(size.Width), u(size.Height))
	return &Canvas{State: canvas.NewState(size), doc: doc, buf: buf}
}

func u(v float64) int {
	return int(math.Round(v * Scale))
}

func (c *Canvas) Err() error { return nil }

// Bytes closes the document and returns it.
func (c *Canvas) Bytes() ([]byte, error) {
	if !c.closed {
		c.doc.End()
		c.closed = true
	}
	return c.buf.Bytes(), nil
}

func (c *Canvas) xy(p canvas.Point) (int, int) {
	p = c.Apply(p)
	return u(p.X), u(c.Size().Height - p.Y)
}

func (c *Canvas) strokeStyle() string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", c.StrokeColor().Hex(), u(c.LineWidth()))
}

func (c *Canvas) fillStyle() string {
	return "stroke:none;fill:" + c.FillColor().Hex()
}

func (c *Canvas) polygon(pts []canvas.Point, style string) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = c.xy(p)
	}
	c.doc.Polygon(xs, ys, style)
}

func (c *Canvas) rect(origin canvas.Point, w, h float64, style string) {
	if !c.Matrix().IsIdentity() {
		c.polygon(canvas.RectCorners(origin, w, h), style)
		return
	}
	x, y := c.xy(canvas.Point{X: origin.X, Y: origin.Y + h})
	c.doc.Rect(x, y, u(w), u(h), style)
}

func (c *Canvas) StrokeLine(p1, p2 canvas.Point) {
	x1, y1 := c.xy(p1)
	x2, y2 := c.xy(p2)
	c.doc.Line(x1, y1, x2, y2, c.strokeStyle())
}

func (c *Canvas) StrokeRect(origin canvas.Point, w, h float64) {
	c.rect(origin, w, h, c.strokeStyle())
}

func (c *Canvas) FillRect(origin canvas.Point, w, h float64) {
	c.rect(origin, w, h, c.fillStyle())
}

func (c *Canvas) StrokeCircle(center canvas.Point, r float64) {
	x, y := c.xy(center)
	c.doc.Circle(x, y, u(r), c.strokeStyle())
}

func (c *Canvas) FillCircle(center canvas.Point, r float64) {
	x, y := c.xy(center)
	c.doc.Circle(x, y, u(r), c.fillStyle())
}

func (c *Canvas) FillPolygon(pts ...canvas.Point) {
	if len(pts) < 3 {
		return
	}
	c.polygon(pts, c.fillStyle())
}

var anchors = map[canvas.Alignment]string{
	canvas.AlignLeft:   "start",
	canvas.AlignCenter: "middle",
	canvas.AlignRight:  "end",
}

func textStyle(font canvas.Font, size float64, align canvas.Alignment, fill canvas.Color) string {
	family := "Times,serif"
	if font.Family() == "Helvetica" {
		family = "Helvetica,Arial,sans-serif"
	}
	parts := []string{
		"font-family:" + family,
		fmt.Sprintf("font-size:%d", u(size)),
		"text-anchor:" + anchors[align],
		"fill:" + fill.Hex(),
	}
	if font.Bold() {
		parts = append(parts, "font-weight:bold")
	}
	if font.Italic() {
		parts = append(parts, "font-style:italic")
	}
	return strings.Join(parts, ";")
}

// DrawText places text at pos. A rotated canvas wraps the text in a group whose
// matrix is the canvas transform conjugated into SVG's y-down scaled space.
func (c *Canvas) DrawText(text string, font canvas.Font, size float64, pos canvas.Point, align canvas.Alignment) {
	style := textStyle(font, size, align, c.FillColor())
	h := c.Size().Height
	x, y := u(pos.X), u(h-pos.Y)

	m := c.Matrix()
	if m.IsIdentity() {
		c.doc.Text(x, y, text, style)
		return
	}

	c.doc.Gtransform(fmt.Sprintf("matrix(%.6f,%.6f,%.6f,%.6f,%.4f,%.4f)",
		m.A, -m.D, -m.B, m.E, Scale*(m.B*h+m.C), Scale*(h-m.E*h-m.F)))
	c.doc.Text(x, y, text, style)
	c.doc.Gend()
}
