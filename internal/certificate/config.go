package certificate

import (
	"certpdf/internal/certificate/qr"
	"certpdf/internal/config"
)

// FromConfig builds a renderer with the configured encoder and branding.
func FromConfig(cfg config.Config, opts ...Option) (*Renderer, error) {
	enc, err := qr.NewEncoder(cfg.Certificate.QREncoder)
	if err != nil {
		return nil, err
	}
	base := []Option{WithEncoder(enc), WithTheme(cfg.Theme())}
	return New(append(base, opts...)...), nil
}
