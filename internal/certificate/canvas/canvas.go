// Package canvas defines the drawing surface the certificate layout paints on.
//
// A Canvas is bound to one fixed-size page and exposes a small vector vocabulary
// (lines, rectangles, circles, polygons, text) in page-space. Style and transform
// state live in a State stack shared by every backend; ScopedTransform is the only
// way to rotate, and it always restores the previous state when its block returns.
package canvas

import "github.com/samber/lo"

// Canvas is a stateful vector drawing surface.
type Canvas interface {
	Size() Size
	FillColor() Color
	StrokeColor() Color
	LineWidth() float64

	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)

	StrokeLine(p1, p2 Point)
	StrokeRect(origin Point, w, h float64)
	FillRect(origin Point, w, h float64)
	StrokeCircle(center Point, r float64)
	FillCircle(center Point, r float64)
	FillPolygon(points ...Point)
	DrawText(text string, font Font, size float64, pos Point, align Alignment)

	// ScopedTransform rotates about pivot for the duration of block. Transform and
	// style are restored on every exit path, including a panic inside block.
	ScopedTransform(rotationDeg float64, pivot Point, block func() error) error

	// Err returns the first backend failure, if any.
	Err() error
}

type frame struct {
	matrix    Matrix
	fill      Color
	stroke    Color
	lineWidth float64
}

// State holds the current style and transform plus the push/pop stack.
// Backends embed it and read it at draw time.
type State struct {
	size  Size
	cur   frame
	stack []frame
}

// NewState returns a state for a page of the given size: identity transform,
// black fill and stroke, 1pt lines.
func NewState(size Size) *State {
	return &State{
		size: size,
		cur:  frame{matrix: Identity(), lineWidth: 1},
	}
}

func (s *State) Size() Size { return s.size }
func (s *State) FillColor() Color { return s.cur.fill }
func (s *State) StrokeColor() Color { return s.cur.stroke }
func (s *State) LineWidth() float64 { return s.cur.lineWidth }
func (s *State) Matrix() Matrix { return s.cur.matrix }
func (s *State) Depth() int { return len(s.stack) }
func (s *State) SetFillColor(c Color) { s.cur.fill = c }
func (s *State) SetStrokeColor(c Color) { s.cur.stroke = c }
func (s *State) SetLineWidth(w float64) { s.cur.lineWidth = w }
func (s *State) Apply(p Point) Point { return s.cur.matrix.TransformPoint(p) }
func (s *State) Rotation() float64 { return s.cur.matrix.RotationDegrees() }

// ApplyAll maps a point list through the current transform.
func (s *State) ApplyAll(points []Point) []Point {
	return lo.Map(points, func(p Point, _ int) Point { return s.Apply(p) })
}

func (s *State) push() {
	s.stack = append(s.stack, s.cur)
}

func (s *State) pop() {
	if len(s.stack) == 0 {
		return
	}
	s.cur = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// ScopedTransform implements Canvas.ScopedTransform for every backend.
func (s *State) ScopedTransform(rotationDeg float64, pivot Point, block func() error) error {
	s.push()
	defer s.pop()

	s.cur.matrix = s.cur.matrix.Multiply(RotateAbout(rotationDeg, pivot))
	return block()
}

// RectCorners returns the corners of an axis-aligned rectangle, counterclockwise
// from origin.
func RectCorners(origin Point, w, h float64) []Point {
	return []Point{
		origin,
		{X: origin.X + w, Y: origin.Y},
		{X: origin.X + w, Y: origin.Y + h},
		{X: origin.X, Y: origin.Y + h},
	}
}
