// Package geometry computes point sets for the certificate's ornamental motifs.
//
// Every function is pure: it takes page-space anchors and sizes and returns
// points, never touching a canvas. Angles are accepted in degrees and converted
// to radians internally.
package geometry

import (
	"math"

	"certpdf/internal/certificate/canvas"
)

const (
	DefaultStarPoints       = 5
	DefaultStarInnerRatio   = 0.4
	DefaultDividerHalfWidth = 180.0
	DefaultDividerGap       = 20.0
	DefaultSerrations       = 24
	DefaultSealDots         = 16
	DefaultSealRotation     = -12.0
)

// Segment is a straight line between two page-space points.
type Segment struct {
	From, To canvas.Point
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// polar returns the point at radius r and angle deg (counterclockwise from +x).
func polar(center canvas.Point, r, deg float64) canvas.Point {
	a := radians(deg)
	return canvas.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
}

// Flourish is one corner ornament: two arms meeting at the corner anchor and a dot
// inside the angle they form.
type Flourish struct {
	Arms [2]Segment
	Dot  canvas.Point
}

// CornerFlourish returns the ornament anchored at origin for corner 0 (top-left),
// 1 (top-right), 2 (bottom-right) or 3 (bottom-left). Arms of length size point
// toward the page interior, so anchors placed symmetrically about the page center
// produce mirror-image ornaments.
func CornerFlourish(corner int, origin canvas.Point, size float64) Flourish {
	corner = ((corner % 4) + 4) % 4

	sx, sy := 1.0, -1.0
	if corner == 1 || corner == 2 {
		sx = -1
	}
	if corner == 2 || corner == 3 {
		sy = 1
	}

	return Flourish{
		Arms: [2]Segment{
			{From: origin, To: origin.Add(sx*size, 0)},
			{From: origin, To: origin.Add(0, sy*size)},
		},
		Dot: origin.Add(sx*size*0.3, sy*size*0.3),
	}
}

// Star returns 2*pointCount vertices alternating between outerRadius and
// outerRadius*innerRatio. Outer vertex i sits at i*(360/pointCount) - 90 degrees
// measured clockwise from +x, which puts vertex 0 straight above center; inner
// vertices are offset by half a step. It returns nil when pointCount <= 0.
func Star(center canvas.Point, outerRadius float64, pointCount int, innerRatio float64) []canvas.Point {
	if pointCount <= 0 {
		return nil
	}

	step := 360 / float64(pointCount)
	inner := outerRadius * innerRatio
	points := make([]canvas.Point, 0, 2*pointCount)
	for i := 0; i < pointCount; i++ {
		deg := float64(i)*step - 90
		points = append(points,
			polar(center, outerRadius, -deg),
			polar(center, inner, -(deg+step/2)),
		)
	}
	return points
}

// Divider is a horizontal rule broken by a small diamond.
type Divider struct {
	Left, Right Segment
	Diamond     [4]canvas.Point
}

// DividerGeometry returns two segments spanning halfWidth on either side of
// center, leaving gap clear around a diamond centered at center.
func DividerGeometry(center canvas.Point, halfWidth, gap float64) Divider {
	d := gap / 4
	return Divider{
		Left:  Segment{From: center.Add(-halfWidth, 0), To: center.Add(-gap, 0)},
		Right: Segment{From: center.Add(gap, 0), To: center.Add(halfWidth, 0)},
		Diamond: [4]canvas.Point{
			center.Add(0, d),
			center.Add(d, 0),
			center.Add(0, -d),
			center.Add(-d, 0),
		},
	}
}

// Seal holds everything the seal stage strokes around its center.
type Seal struct {
	Serrations []Segment
	Dots       []canvas.Point
	// Rings are concentric radii, outermost first.
	Rings []float64
}

// SealRing computes the seal ornament. Serrations run radially from
// outerRadius-3 to outerRadius+2 every 360/serrationCount degrees; dots sit
// halfway between the second ring and innerRadius every 360/dotCount degrees.
// Every angle is offset by rotationDeg.
func SealRing(center canvas.Point, outerRadius, innerRadius float64, serrationCount, dotCount int, rotationDeg float64) Seal {
	seal := Seal{
		Rings: []float64{outerRadius, outerRadius - 6, innerRadius, innerRadius - 4},
	}

	if serrationCount > 0 {
		step := 360 / float64(serrationCount)
		seal.Serrations = make([]Segment, serrationCount)
		for i := range seal.Serrations {
			deg := rotationDeg + float64(i)*step
			seal.Serrations[i] = Segment{
				From: polar(center, outerRadius-3, deg),
				To:   polar(center, outerRadius+2, deg),
			}
		}
	}

	if dotCount > 0 {
		step := 360 / float64(dotCount)
		r := (outerRadius - 6 + innerRadius) / 2
		seal.Dots = make([]canvas.Point, dotCount)
		for i := range seal.Dots {
			seal.Dots[i] = polar(center, r, rotationDeg+float64(i)*step)
		}
	}

	return seal
}
