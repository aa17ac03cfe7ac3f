// Package layout paints a certificate of completion onto a canvas.
//
// The certificate is drawn by a fixed list of stages run in paint order; later
// stages paint over earlier ones, so the order is part of the design.
package layout

import (
	"fmt"

	"certpdf/internal/certificate/canvas"
	"certpdf/internal/certificate/qr"
	"certpdf/internal/domain"
)

// Document is everything a render needs, built fresh per call.
type Document struct {
	Request domain.CertificateRequest
	QR      qr.Matrix
	Theme   Theme
}

// Stage is one step of the paint pipeline.
type Stage struct {
	Name string
	Draw func(c canvas.Canvas, doc *Document) error
}

var stages = []Stage{
	{Name: "background", Draw: drawBackground},
	{Name: "border", Draw: drawBorder},
	{Name: "corners", Draw: drawCorners},
	{Name: "header", Draw: drawHeader},
	{Name: "body", Draw: drawBody},
	{Name: "seal", Draw: drawSeal},
	{Name: "qr", Draw: drawQR},
	{Name: "signatures", Draw: drawSignatures},
	{Name: "footer", Draw: drawFooter},
}

// Stages returns the pipeline in paint order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Compose runs every stage against c. A backend failure stops the pipeline and is
// reported as a RenderBackendError naming the stage; the canvas must then be
// discarded.
func Compose(c canvas.Canvas, doc *Document) error {
	for _, s := range stages {
		if err := s.Draw(c, doc); err != nil {
			return fmt.Errorf("%s stage: %w", s.Name, err)
		}
		if err := c.Err(); err != nil {
			return &domain.RenderBackendError{Stage: s.Name, Err: err}
		}
	}
	return nil
}
