package canvas

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is a position in page-space: origin bottom-left, y up, in points.
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Size is a width/height pair in points.
type Size struct {
	Width, Height float64
}

// Center returns the center of a page of this size.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// A4Landscape is the only page size the renderer draws on.
var A4Landscape = Size{Width: 841.89, Height: 595.28}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHex parses a "#RRGGBB" hex color string.
func ParseHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex is ParseHex for package-level palette constants.
func MustHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Font is one entry of the fixed core-font catalog.
type Font int

const (
	Serif Font = iota
	SerifItalic
	SerifBold
	SerifBoldItalic
	Sans
	SansBold
)

// Family returns the core font family name.
func (f Font) Family() string {
	switch f {
	case Sans, SansBold:
		return "Helvetica"
	default:
		return "Times"
	}
}

// Style returns the style string ("", "B", "I", "BI").
func (f Font) Style() string {
	switch f {
	case SerifItalic:
		return "I"
	case SerifBold, SansBold:
		return "B"
	case SerifBoldItalic:
		return "BI"
	default:
		return ""
	}
}

// Italic reports whether the face is slanted.
func (f Font) Italic() bool {
	return strings.Contains(f.Style(), "I")
}

// Bold reports whether the face is bold.
func (f Font) Bold() bool {
	return strings.Contains(f.Style(), "B")
}

func (f Font) String() string {
	switch f {
	case Serif:
		return "serif"
	case SerifItalic:
		return "serif-italic"
	case SerifBold:
		return "serif-bold"
	case SerifBoldItalic:
		return "serif-bold-italic"
	case Sans:
		return "sans"
	case SansBold:
		return "sans-bold"
	}
	return "font(" + strconv.Itoa(int(f)) + ")"
}

// Alignment positions text horizontally relative to its anchor point.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Offset returns how far left of the anchor a run of the given width starts.
func (a Alignment) Offset(width float64) float64 {
	switch a {
	case AlignCenter:
		return width / 2
	case AlignRight:
		return width
	}
	return 0
}
