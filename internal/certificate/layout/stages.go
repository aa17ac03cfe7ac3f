package layout

import (
	"certpdf/internal/certificate/canvas"
	"certpdf/internal/certificate/geometry"
	"certpdf/internal/certificate/qr"
)

const (
	cornerInset = 45.0
	cornerSize  = 40.0

	// distances below the page top
	headerTitleY    = 105.0
	headerSubtitleY = 127.0
	headerDividerY  = 142.0
	bodyTop         = 170.0

	// distances below bodyTop
	bodyNameY     = 35.0
	bodyEmailY    = 55.0
	bodyAchieveY  = 90.0
	bodyCourseY   = 120.0
	bodyPlatformY = 145.0

	signatureLineY = 125.0
	signatureHalf  = 80.0
	dateCenterX    = 190.0
	directorRight  = 270.0 // from the page right edge

	sealY     = 130.0
	sealOuter = 48.0
	sealInner = 34.0
	sealDrop  = 2.0 // shadow offset down and to the right

	qrSize    = 55.0
	qrPadding = 4.0
	qrRight   = 125.0 // from the page right edge to the symbol's left edge
	qrBottom  = 100.0

	footerIDY  = 62.0
	footerURLY = 53.0
	footerLegY = 44.0
)

const disclaimer = "This certificate confirms completion of the course named above. It does not confer academic credit or professional licensure."

// Band is one shape of a nested group: its offset (inset or radius) and stroke.
type Band struct {
	Offset    float64
	LineWidth float64
	Color     canvas.Color
}

// strokeBands strokes shape once per band, outermost first.
func strokeBands(c canvas.Canvas, bands []Band, shape func(offset float64)) {
	for _, b := range bands {
		c.SetStrokeColor(b.Color)
		c.SetLineWidth(b.LineWidth)
		shape(b.Offset)
	}
}

func top(c canvas.Canvas, below float64) float64 {
	return c.Size().Height - below
}

func drawBackground(c canvas.Canvas, doc *Document) error {
	size := c.Size()
	c.SetFillColor(doc.Theme.Paper)
	c.FillRect(canvas.Point{}, size.Width, size.Height)
	return nil
}

func drawBorder(c canvas.Canvas, doc *Document) error {
	size := c.Size()
	bands := []Band{
		{Offset: 25, LineWidth: 2.5, Color: doc.Theme.Navy},
		{Offset: 31, LineWidth: 0.75, Color: doc.Theme.Gold},
		{Offset: 35, LineWidth: 1.25, Color: doc.Theme.Navy},
	}
	strokeBands(c, bands, func(offset float64) {
		c.StrokeRect(canvas.Point{X: offset, Y: offset}, size.Width-2*offset, size.Height-2*offset)
	})
	return nil
}

func drawCorners(c canvas.Canvas, doc *Document) error {
	size := c.Size()
	anchors := [4]canvas.Point{
		{X: cornerInset, Y: size.Height - cornerInset},
		{X: size.Width - cornerInset, Y: size.Height - cornerInset},
		{X: size.Width - cornerInset, Y: cornerInset},
		{X: cornerInset, Y: cornerInset},
	}

	c.SetStrokeColor(doc.Theme.Gold)
	c.SetFillColor(doc.Theme.Gold)
	c.SetLineWidth(1.5)
	for i, anchor := range anchors {
		f := geometry.CornerFlourish(i, anchor, cornerSize)
		for _, arm := range f.Arms {
			c.StrokeLine(arm.From, arm.To)
		}
		c.FillCircle(f.Dot, 2)
	}
	return nil
}

func drawHeader(c canvas.Canvas, doc *Document) error {
	cx := c.Size().Center().X

	c.SetFillColor(doc.Theme.Navy)
	c.DrawText("CERTIFICATE", canvas.SerifBold, 34, canvas.Point{X: cx, Y: top(c, headerTitleY)}, canvas.AlignCenter)
	c.SetFillColor(doc.Theme.Gold)
	c.DrawText("OF COMPLETION", canvas.Sans, 12, canvas.Point{X: cx, Y: top(c, headerSubtitleY)}, canvas.AlignCenter)

	d := geometry.DividerGeometry(canvas.Point{X: cx, Y: top(c, headerDividerY)}, geometry.DefaultDividerHalfWidth, geometry.DefaultDividerGap)
	c.SetStrokeColor(doc.Theme.Gold)
	c.SetLineWidth(1)
	c.StrokeLine(d.Left.From, d.Left.To)
	c.StrokeLine(d.Right.From, d.Right.To)
	c.FillPolygon(d.Diamond[:]...)
	return nil
}

func drawBody(c canvas.Canvas, doc *Document) error {
	req := doc.Request
	cx := c.Size().Center().X
	boxTop := top(c, bodyTop)
	at := func(below float64) canvas.Point { return canvas.Point{X: cx, Y: boxTop - below} }

	c.SetFillColor(doc.Theme.Ink)
	c.DrawText("This is to certify that", canvas.SerifItalic, 14, at(0), canvas.AlignCenter)

	if req.HasRecipientName() {
		c.SetFillColor(doc.Theme.Navy)
		c.DrawText(req.RecipientName, canvas.SerifBold, 28, at(bodyNameY), canvas.AlignCenter)
		c.SetFillColor(doc.Theme.Muted)
		c.DrawText(req.RecipientEmail, canvas.Sans, 11, at(bodyEmailY), canvas.AlignCenter)
	} else {
		c.SetFillColor(doc.Theme.Navy)
		c.DrawText(req.RecipientEmail, canvas.SerifBold, 22, at(bodyNameY), canvas.AlignCenter)
	}

	c.SetFillColor(doc.Theme.Ink)
	c.DrawText("has successfully completed the course", canvas.SerifItalic, 14, at(bodyAchieveY), canvas.AlignCenter)
	c.SetFillColor(doc.Theme.Navy)
	c.DrawText(req.CourseTitle, canvas.SerifBold, 22, at(bodyCourseY), canvas.AlignCenter)
	c.SetFillColor(doc.Theme.Muted)
	c.DrawText("offered through "+doc.Theme.PlatformName, canvas.Sans, 11, at(bodyPlatformY), canvas.AlignCenter)
	return nil
}

func sealCenter(c canvas.Canvas) canvas.Point {
	return canvas.Point{X: c.Size().Center().X, Y: sealY}
}

func drawSeal(c canvas.Canvas, doc *Document) error {
	center := sealCenter(c)
	seal := geometry.SealRing(center, sealOuter, sealInner, geometry.DefaultSerrations, geometry.DefaultSealDots, geometry.DefaultSealRotation)

	c.SetFillColor(doc.Theme.Shadow)
	c.FillCircle(center.Add(sealDrop, -sealDrop), sealOuter)
	c.SetFillColor(doc.Theme.Wax)
	c.FillCircle(center, sealOuter)

	widths := []float64{2, 0.75, 1.25, 0.5}
	bands := make([]Band, len(seal.Rings))
	for i, r := range seal.Rings {
		bands[i] = Band{Offset: r, LineWidth: widths[i], Color: doc.Theme.Navy}
	}
	strokeBands(c, bands, func(radius float64) {
		c.StrokeCircle(center, radius)
	})

	c.SetStrokeColor(doc.Theme.Gold)
	c.SetLineWidth(1)
	for _, s := range seal.Serrations {
		c.StrokeLine(s.From, s.To)
	}
	c.SetFillColor(doc.Theme.Gold)
	for _, d := range seal.Dots {
		c.FillCircle(d, 1.2)
	}

	return c.ScopedTransform(geometry.DefaultSealRotation, center, func() error {
		c.SetFillColor(doc.Theme.Navy)
		c.DrawText("VERIFIED", canvas.SansBold, 8, center.Add(0, 8), canvas.AlignCenter)
		c.FillPolygon(geometry.Star(center, 6, geometry.DefaultStarPoints, geometry.DefaultStarInnerRatio)...)
		c.DrawText("COMPLETION", canvas.SansBold, 7, center.Add(0, -14), canvas.AlignCenter)
		return nil
	})
}

func drawQR(c canvas.Canvas, doc *Document) error {
	bottomLeft := canvas.Point{X: c.Size().Width - qrRight, Y: qrBottom}

	c.SetFillColor(doc.Theme.Navy)
	c.SetStrokeColor(doc.Theme.Gold)
	c.SetLineWidth(0.75)
	if err := qr.Render(c, doc.QR, qr.Origin(doc.QR, bottomLeft, qrSize), qrSize, qrPadding); err != nil {
		return err
	}

	c.SetFillColor(doc.Theme.Muted)
	c.DrawText("SCAN TO VERIFY", canvas.SansBold, 6, canvas.Point{X: bottomLeft.X + qrSize/2, Y: bottomLeft.Y - qrPadding - 10}, canvas.AlignCenter)
	return nil
}

func signatureBlock(c canvas.Canvas, doc *Document, centerX float64, value string, font canvas.Font, size float64, caption string) {
	c.SetFillColor(doc.Theme.Ink)
	c.DrawText(value, font, size, canvas.Point{X: centerX, Y: signatureLineY + 5}, canvas.AlignCenter)

	c.SetStrokeColor(doc.Theme.Navy)
	c.SetLineWidth(0.75)
	c.StrokeLine(canvas.Point{X: centerX - signatureHalf, Y: signatureLineY}, canvas.Point{X: centerX + signatureHalf, Y: signatureLineY})

	c.SetFillColor(doc.Theme.Muted)
	c.DrawText(caption, canvas.Sans, 8, canvas.Point{X: centerX, Y: signatureLineY - 12}, canvas.AlignCenter)
}

func drawSignatures(c canvas.Canvas, doc *Document) error {
	width := c.Size().Width
	date := doc.Request.CompletionDate.Format("January 2, 2006")

	signatureBlock(c, doc, dateCenterX, date, canvas.Serif, 13, "Date of Completion")
	signatureBlock(c, doc, width-directorRight, doc.Theme.DirectorName, canvas.SerifItalic, 20, doc.Theme.DirectorTitle)
	return nil
}

func drawFooter(c canvas.Canvas, doc *Document) error {
	cx := c.Size().Center().X

	c.SetFillColor(doc.Theme.Muted)
	c.DrawText("Certificate ID: "+doc.Request.CertificateID, canvas.Sans, 7, canvas.Point{X: cx, Y: footerIDY}, canvas.AlignCenter)
	c.DrawText("Verify at "+doc.Request.VerificationURL, canvas.Sans, 7, canvas.Point{X: cx, Y: footerURLY}, canvas.AlignCenter)
	c.DrawText(disclaimer, canvas.Sans, 5.5, canvas.Point{X: cx, Y: footerLegY}, canvas.AlignCenter)
	return nil
}
