// Package certificate turns a CertificateRequest into a finished document.
package certificate

import (
	"time"

	"certpdf/internal/certificate/canvas"
	"certpdf/internal/certificate/layout"
	"certpdf/internal/certificate/pdf"
	"certpdf/internal/certificate/qr"
	"certpdf/internal/certificate/svg"
	"certpdf/internal/domain"
)

// Renderer is immutable after New and safe for concurrent use; every call
// builds its own canvas.
type Renderer struct {
	encoder qr.Encoder
	theme   layout.Theme
	clock   func() time.Time
	creator string
	pdfOpts []pdf.Option
}

type Option func(r *Renderer)

// WithEncoder replaces the default skip2 QR encoder.
func WithEncoder(e qr.Encoder) Option {
	return func(r *Renderer) { r.encoder = e }
}

func WithTheme(t layout.Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithClock pins the document creation date. A nil clock leaves it to gofpdf.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) { r.clock = clock }
}

// WithCreator sets the /Creator entry of the information dictionary.
func WithCreator(name string) Option {
	return func(r *Renderer) { r.creator = name }
}

// WithPDFOptions passes options through to every pdf canvas.
func WithPDFOptions(opts ...pdf.Option) Option {
	return func(r *Renderer) { r.pdfOpts = append(r.pdfOpts, opts...) }
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		encoder: qr.Skip2Encoder{},
		theme:   layout.DefaultTheme(),
		creator: "certpdf",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the branding the renderer prints.
func (r *Renderer) Theme() layout.Theme { return r.theme }

// prepare validates req and encodes its verification URL. Nothing is drawn
// unless both succeed.
func (r *Renderer) prepare(req domain.CertificateRequest) (*layout.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	m, err := r.encoder.Encode(req.VerificationURL)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &layout.Document{Request: req, QR: m, Theme: r.theme}, nil
}

// Generate renders req as a single-page A4 landscape PDF.
func (r *Renderer) Generate(req domain.CertificateRequest) ([]byte, error) {
	doc, err := r.prepare(req)
	if err != nil {
		return nil, err
	}

	meta := pdf.Metadata{
		Title:   "Certificate of Completion - " + req.CourseTitle,
		Author:  r.theme.PlatformName,
		Subject: req.CertificateID,
		Creator: r.creator,
	}
	if r.clock != nil {
		meta.CreatedAt = r.clock()
	}

	c := pdf.New(meta, r.pdfOpts...)
	if err := layout.Compose(c, doc); err != nil {
		return nil, err
	}
	out, err := c.Bytes()
	if err != nil {
		return nil, &domain.RenderBackendError{Stage: "serialize", Err: err}
	}
	return out, nil
}

// Preview renders req as SVG using the same layout as Generate.
func (r *Renderer) Preview(req domain.CertificateRequest) ([]byte, error) {
	doc, err := r.prepare(req)
	if err != nil {
		return nil, err
	}
	c := svg.New()
	if err := layout.Compose(c, doc); err != nil {
		return nil, err
	}
	return c.Bytes()
}

// Draw runs the layout against an arbitrary canvas, for callers that bring
// their own backend.
func (r *Renderer) Draw(c canvas.Canvas, req domain.CertificateRequest) error {
	doc, err := r.prepare(req)
	if err != nil {
		return err
	}
	return layout.Compose(c, doc)
}
