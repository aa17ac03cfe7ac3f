package canvas

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestRotateAbout_KeepsPivotFixed(t *testing.T) {
	pivot := Point{X: 100, Y: 50}
	m := RotateAbout(90, pivot)

	assertPoint(t, pivot, m.TransformPoint(pivot))
	assertPoint(t, Point{X: 100, Y: 60}, m.TransformPoint(Point{X: 110, Y: 50}))
	assert.InDelta(t, 90, m.RotationDegrees(), 1e-9)
}

func TestMatrix_MultiplyAppliesRightOperandFirst(t *testing.T) {
	m := Translate(10, 0).Multiply(Rotate(math.Pi / 2))
	assertPoint(t, Point{X: 10, Y: 1}, m.TransformPoint(Point{X: 1, Y: 0}))
	assert.True(t, Identity().IsIdentity())
	assert.False(t, m.IsIdentity())
}

func TestScopedTransform_RestoresStateAfterError(t *testing.T) {
	r := NewRecorder()
	r.SetFillColor(RGB(1, 2, 3))
	r.SetStrokeColor(RGB(4, 5, 6))
	r.SetLineWidth(2)

	boom := errors.New("boom")
	err := r.ScopedTransform(-12, Point{X: 10, Y: 10}, func() error {
		r.SetFillColor(RGB(200, 0, 0))
		r.SetStrokeColor(RGB(0, 200, 0))
		r.SetLineWidth(9)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, RGB(1, 2, 3), r.FillColor())
	assert.Equal(t, RGB(4, 5, 6), r.StrokeColor())
	assert.Equal(t, 2.0, r.LineWidth())
	assert.True(t, r.Matrix().IsIdentity())
	assert.Equal(t, 0, r.Depth())
}

func TestScopedTransform_RestoresStateAfterPanic(t *testing.T) {
	r := NewRecorder()
	r.SetLineWidth(3)

	func() {
		defer func() { _ = recover() }()
		_ = r.ScopedTransform(45, Point{}, func() error {
			r.SetLineWidth(7)
			panic("stage exploded")
		})
	}()

	assert.Equal(t, 3.0, r.LineWidth())
	assert.True(t, r.Matrix().IsIdentity())
	assert.Equal(t, 0, r.Depth())
}

func TestScopedTransform_NestsAndMapsDrawingCalls(t *testing.T) {
	r := NewRecorder()
	pivot := Point{X: 50, Y: 50}

	err := r.ScopedTransform(90, pivot, func() error {
		return r.ScopedTransform(90, pivot, func() error {
			assert.Equal(t, 2, r.Depth())
			r.FillCircle(Point{X: 60, Y: 50}, 2)
			return nil
		})
	})
	require.NoError(t, err)
	r.StrokeLine(Point{X: 60, Y: 50}, Point{X: 70, Y: 50})

	require.Len(t, r.Calls, 2)
	assertPoint(t, Point{X: 40, Y: 50}, r.Calls[0].Points[0])
	assert.InDelta(t, 180, math.Abs(r.Calls[0].Rotation), 1e-9)
	assertPoint(t, Point{X: 60, Y: 50}, r.Calls[1].Points[0])
	assert.Equal(t, 0.0, r.Calls[1].Rotation)
}

func TestRecorder_FailOnSetsErr(t *testing.T) {
	r := NewRecorder()
	r.FailOn = OpFillPolygon

	r.FillRect(Point{}, 1, 1)
	assert.NoError(t, r.Err())
	r.FillPolygon(Point{}, Point{X: 1}, Point{Y: 1})
	assert.ErrorIs(t, r.Err(), ErrInjected)
	assert.Equal(t, 1, r.Count(OpFillPolygon))
}

func TestColorHexRoundTripAndErrors(t *testing.T) {
	c, err := ParseHex("#1b2a4a")
	require.NoError(t, err)
	assert.Equal(t, RGB(0x1b, 0x2a, 0x4a), c)
	assert.Equal(t, "#1b2a4a", c.Hex())

	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("zzzzzz")
	assert.Error(t, err)
}

func TestFontCatalog(t *testing.T) {
	tests := []struct {
		font   Font
		family string
		style  string
		name   string
	}{
		{Serif, "Times", "", "serif"},
		{SerifItalic, "Times", "I", "serif-italic"},
		{SerifBold, "Times", "B", "serif-bold"},
		{SerifBoldItalic, "Times", "BI", "serif-bold-italic"},
		{Sans, "Helvetica", "", "sans"},
		{SansBold, "Helvetica", "B", "sans-bold"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.family, tc.font.Family(), tc.name)
		assert.Equal(t, tc.style, tc.font.Style(), tc.name)
		assert.Equal(t, tc.name, tc.font.String())
	}
	assert.True(t, SerifBoldItalic.Italic())
	assert.True(t, SerifBoldItalic.Bold())
	assert.False(t, Sans.Italic())
}

func TestAlignmentOffset(t *testing.T) {
	assert.Equal(t, 0.0, AlignLeft.Offset(10))
	assert.Equal(t, 5.0, AlignCenter.Offset(10))
	assert.Equal(t, 10.0, AlignRight.Offset(10))
}
