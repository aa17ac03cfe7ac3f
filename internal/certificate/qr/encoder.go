package qr

import (
	"fmt"
	"strings"

	"github.com/boombuler/barcode/qr"
	qrcode "github.com/skip2/go-qrcode"

	"certpdf/internal/domain"
)

// Encoder builds a QR matrix at error-correction level M.
type Encoder interface {
	Encode(data string) (Matrix, error)
}

const (
	EncoderSkip2     = "skip2"
	EncoderBoombuler = "boombuler"
)

// NewEncoder returns the encoder registered under name; an empty name selects skip2.
func NewEncoder(name string) (Encoder, error) {
	switch strings.ToLower(name) {
	case "", EncoderSkip2:
		return Skip2Encoder{}, nil
	case EncoderBoombuler:
		return BoombulerEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown qr encoder %q", name)
}

// Skip2Encoder encodes with github.com/skip2/go-qrcode. The quiet zone is left
// out; the renderer's frame padding provides it.
type Skip2Encoder struct{}

func (Skip2Encoder) Encode(data string) (Matrix, error) {
	code, err := qrcode.New(data, qrcode.Medium)
	if err != nil {
		return nil, &domain.QREncodingError{Err: err}
	}
	code.DisableBorder = true
	return Matrix(code.Bitmap()), nil
}

// BoombulerEncoder encodes with github.com/boombuler/barcode/qr.
type BoombulerEncoder struct{}

func (BoombulerEncoder) Encode(data string) (Matrix, error) {
	code, err := qr.Encode(data, qr.M, qr.Auto)
	if err != nil {
		return nil, &domain.QREncodingError{Err: err}
	}

	bounds := code.Bounds()
	n := bounds.Dx()
	m := make(Matrix, n)
	for row := 0; row < n; row++ {
		m[row] = make([]bool, n)
		for col := 0; col < n; col++ {
			r, _, _, _ := code.At(bounds.Min.X+col, bounds.Min.Y+row).RGBA()
			m[row][col] = r < 0x8000
		}
	}
	return m, nil
}
