package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certpdf/internal/certificate/qr"
	"certpdf/internal/config"
)

func TestFromConfig(t *testing.T) {
	var cfg config.Config
	cfg.Certificate.QREncoder = qr.EncoderBoombuler
	cfg.Certificate.PlatformName = "Acme Academy"

	r, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Acme Academy", r.Theme().PlatformName)
	assert.IsType(t, qr.BoombulerEncoder{}, r.encoder)

	cfg.Certificate.QREncoder = "zxing"
	_, err = FromConfig(cfg)
	assert.Error(t, err)
}
