// Package pdf is the gofpdf-backed document serializer for certificate canvases.
package pdf

import (
	"bytes"
	"regexp"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/samber/lo"

	"certpdf/internal/certificate/canvas"
)

// Metadata is written to the document information dictionary.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string
	// CreatedAt pins /CreationDate; the zero value means "now".
	CreatedAt time.Time
}

// Option tweaks the underlying document.
type Option func(f *gofpdf.Fpdf)

// WithoutCompression leaves content streams uncompressed.
func WithoutCompression() Option {
	return func(f *gofpdf.Fpdf) { f.SetCompression(false) }
}

// Canvas draws onto a single A4 landscape gofpdf page. gofpdf measures y from
// the page top, so every page-space point is flipped on the way out.
type Canvas struct {
	*canvas.State
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

var _ canvas.Canvas = (*Canvas)(nil)

// New starts a document with one page, zero margins and no page breaks.
func New(meta Metadata, opts ...Option) *Canvas {
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		SizeStr:        "A4",
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetCatalogSort(true)
	if !meta.CreatedAt.IsZero() {
		f.SetCreationDate(meta.CreatedAt)
	}
	f.SetTitle(meta.Title, true)
	f.SetAuthor(meta.Author, true)
	f.SetSubject(meta.Subject, true)
	f.SetCreator(meta.Creator, true)
	for _, opt := range opts {
		opt(f)
	}
	f.AddPage()

	w, h := f.GetPageSize()
	return &Canvas{
		State:     canvas.NewState(canvas.Size{Width: w, Height: h}),
		pdf:       f,
		translate: f.UnicodeTranslatorFromDescriptor(""),
	}
}

// Err returns the first error gofpdf recorded.
func (c *Canvas) Err() error {
	return c.pdf.Error()
}

// Bytes serializes the document. It may only be called once.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Canvas) xy(p canvas.Point) (float64, float64) {
	p = c.Apply(p)
	return p.X, c.Size().Height - p.Y
}

func (c *Canvas) points(pts []canvas.Point) []gofpdf.PointType {
	return lo.Map(pts, func(p canvas.Point, _ int) gofpdf.PointType {
		x, y := c.xy(p)
		return gofpdf.PointType{X: x, Y: y}
	})
}

func (c *Canvas) applyStroke() {
	s := c.StrokeColor()
	c.pdf.SetDrawColor(int(s.R), int(s.G), int(s.B))
	c.pdf.SetLineWidth(c.LineWidth())
}

func (c *Canvas) applyFill() {
	f := c.FillColor()
	c.pdf.SetFillColor(int(f.R), int(f.G), int(f.B))
}

func (c *Canvas) StrokeLine(p1, p2 canvas.Point) {
	c.applyStroke()
	x1, y1 := c.xy(p1)
	x2, y2 := c.xy(p2)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *Canvas) rect(origin canvas.Point, w, h float64, style string) {
	if c.Matrix().IsIdentity() {
		x, y := c.xy(canvas.Point{X: origin.X, Y: origin.Y + h})
		c.pdf.Rect(x, y, w, h, style)
		return
	}
	c.pdf.Polygon(c.points(canvas.RectCorners(origin, w, h)), style)
}

func (c *Canvas) StrokeRect(origin canvas.Point, w, h float64) {
	c.applyStroke()
	c.rect(origin, w, h, "D")
}

func (c *Canvas) FillRect(origin canvas.Point, w, h float64) {
	c.applyFill()
	c.rect(origin, w, h, "F")
}

func (c *Canvas) StrokeCircle(center canvas.Point, r float64) {
	c.applyStroke()
	x, y := c.xy(center)
	c.pdf.Circle(x, y, r, "D")
}

func (c *Canvas) FillCircle(center canvas.Point, r float64) {
	c.applyFill()
	x, y := c.xy(center)
	c.pdf.Circle(x, y, r, "F")
}

func (c *Canvas) FillPolygon(pts ...canvas.Point) {
	if len(pts) < 3 {
		return
	}
	c.applyFill()
	c.pdf.Polygon(c.points(pts), "F")
}

// DrawText sets text with its baseline at pos. Under a rotation the glyphs are
// placed through an explicit cm matrix equal to the canvas transform, so text
// and shapes share one coordinate system.
func (c *Canvas) DrawText(text string, font canvas.Font, size float64, pos canvas.Point, align canvas.Alignment) {
	fill := c.FillColor()
	c.pdf.SetTextColor(int(fill.R), int(fill.G), int(fill.B))
	c.pdf.SetFont(font.Family(), font.Style(), size)

	s := c.translate(text)
	x := pos.X - align.Offset(c.pdf.GetStringWidth(s))
	height := c.Size().Height

	m := c.Matrix()
	if m.IsIdentity() {
		c.pdf.Text(x, height-pos.Y, s)
		return
	}

	c.pdf.TransformBegin()
	c.pdf.Transform(gofpdf.TransformMatrix{A: m.A, B: m.D, C: m.B, D: m.E, E: m.C, F: m.F})
	c.pdf.Text(x, height-pos.Y, s)
	c.pdf.TransformEnd()
}

var dateField = regexp.MustCompile(`/(CreationDate|ModDate) \(D:[^)]*\)`)

// StripDates blanks the information dictionary timestamps, the only part of the
// output that differs between two renders of the same document.
func StripDates(doc []byte) []byte {
	return dateField.ReplaceAll(doc, []byte("/$1 ()"))
}
