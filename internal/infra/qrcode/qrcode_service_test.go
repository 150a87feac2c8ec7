package qrcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_RenderTokenQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	pngBytes, err := service.RenderTokenQR("b64url-opaque-token-blob")
	require.NoError(t, err)
	assert.NotEmpty(t, pngBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), pngBytes[0])
	assert.Equal(t, byte(0x50), pngBytes[1])
	assert.Equal(t, byte(0x4E), pngBytes[2])
	assert.Equal(t, byte(0x47), pngBytes[3])
}

func TestQRCodeService_RenderTokenQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M")

			pngBytes, err := service.RenderTokenQR("b64url-opaque-token-blob")
			require.NoError(t, err)
			assert.NotEmpty(t, pngBytes)
		})
	}
}

func TestQRCodeService_RenderTokenQR_EmptyBlob(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.RenderTokenQR("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty token blob")
}
