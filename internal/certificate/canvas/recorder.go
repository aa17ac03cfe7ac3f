package canvas

import "errors"

// Drawing operations recorded by Recorder.
const (
	OpSetFill      = "set_fill"
	OpSetStroke    = "set_stroke"
	OpSetLineWidth = "set_line_width"
	OpStrokeLine   = "stroke_line"
	OpStrokeRect   = "stroke_rect"
	OpFillRect     = "fill_rect"
	OpStrokeCircle = "stroke_circle"
	OpFillCircle   = "fill_circle"
	OpFillPolygon  = "fill_polygon"
	OpText         = "text"
)

// Call is one recorded canvas operation. Points are in page-space after the
// active transform; Origin, Width and Height keep the untransformed rectangle.
type Call struct {
	Op        string
	Points    []Point
	Origin    Point
	Width     float64
	Height    float64
	Radius    float64
	Text      string
	Font      Font
	FontSize  float64
	Align     Alignment
	Rotation  float64
	Fill      Color
	Stroke    Color
	LineWidth float64
}

// Recorder is a Canvas that records every call instead of producing a document.
type Recorder struct {
	*State
	Calls []Call

	// FailOn makes the first call with this op set Err, imitating a backend failure.
	FailOn string
	err    error
}

// ErrInjected is the failure a Recorder reports when FailOn matches.
var ErrInjected = errors.New("injected backend failure")

var _ Canvas = (*Recorder)(nil)

// NewRecorder returns a recorder for an A4 landscape page.
func NewRecorder() *Recorder {
	return &Recorder{State: NewState(A4Landscape)}
}

func (r *Recorder) record(c Call) {
	if r.FailOn != "" && c.Op == r.FailOn && r.err == nil {
		r.err = ErrInjected
	}
	c.Fill = r.FillColor()
	c.Stroke = r.StrokeColor()
	c.LineWidth = r.LineWidth()
	c.Rotation = r.Rotation()
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) Err() error { return r.err }

func (r *Recorder) SetFillColor(c Color) {
	r.State.SetFillColor(c)
	r.record(Call{Op: OpSetFill})
}

func (r *Recorder) SetStrokeColor(c Color) {
	r.State.SetStrokeColor(c)
	r.record(Call{Op: OpSetStroke})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.State.SetLineWidth(w)
	r.record(Call{Op: OpSetLineWidth})
}

func (r *Recorder) StrokeLine(p1, p2 Point) {
	r.record(Call{Op: OpStrokeLine, Points: r.ApplyAll([]Point{p1, p2})})
}

func (r *Recorder) StrokeRect(origin Point, w, h float64) {
	r.record(Call{Op: OpStrokeRect, Points: r.ApplyAll(RectCorners(origin, w, h)), Origin: origin, Width: w, Height: h})
}

func (r *Recorder) FillRect(origin Point, w, h float64) {
	r.record(Call{Op: OpFillRect, Points: r.ApplyAll(RectCorners(origin, w, h)), Origin: origin, Width: w, Height: h})
}

func (r *Recorder) StrokeCircle(center Point, radius float64) {
	r.record(Call{Op: OpStrokeCircle, Points: []Point{r.Apply(center)}, Radius: radius})
}

func (r *Recorder) FillCircle(center Point, radius float64) {
	r.record(Call{Op: OpFillCircle, Points: []Point{r.Apply(center)}, Radius: radius})
}

func (r *Recorder) FillPolygon(points ...Point) {
	r.record(Call{Op: OpFillPolygon, Points: r.ApplyAll(points)})
}

func (r *Recorder) DrawText(text string, font Font, size float64, pos Point, align Alignment) {
	r.record(Call{Op: OpText, Points: []Point{r.Apply(pos)}, Text: text, Font: font, FontSize: size, Align: align})
}

// Count returns the number of recorded calls with the given op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Texts returns the text of every recorded DrawText call, in paint order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == OpText {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset discards recorded calls but keeps the current state.
func (r *Recorder) Reset() {
	r.Calls = nil
	r.err = nil
}
