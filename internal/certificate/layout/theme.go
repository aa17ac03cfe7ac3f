package layout

import "certpdf/internal/certificate/canvas"

// Theme carries the branding printed on every certificate.
type Theme struct {
	PlatformName  string
	DirectorName  string
	DirectorTitle string

	Paper  canvas.Color
	Ink    canvas.Color
	Muted  canvas.Color
	Navy   canvas.Color
	Gold   canvas.Color
	Wax    canvas.Color
	Shadow canvas.Color
}

// DefaultTheme returns the stock navy-and-gold palette.
func DefaultTheme() Theme {
	return Theme{
		PlatformName:  "Learning Platform",
		DirectorName:  "Program Director",
		DirectorTitle: "Director of Education",

		Paper:  canvas.MustHex("#fdfaf3"),
		Ink:    canvas.MustHex("#1f2433"),
		Muted:  canvas.MustHex("#6b7080"),
		Navy:   canvas.MustHex("#1b2a4a"),
		Gold:   canvas.MustHex("#b8923a"),
		Wax:    canvas.MustHex("#f4e9c8"),
		Shadow: canvas.MustHex("#d9c48f"),
	}
}
