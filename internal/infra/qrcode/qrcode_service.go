// Package qrcode renders sealed proof-token blobs as scannable QR images.
package qrcode

import (
	"fmt"

	"swapmeet/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// RenderTokenQR renders the sealed token blob as a PNG image. The blob goes in
// verbatim; scanners hand it back to the verification endpoint untouched.
func (s *qrcodeService) RenderTokenQR(blob string) ([]byte, error) {
	if blob == "" {
		return nil, fmt.Errorf("empty token blob")
	}

	qrCode, err := qrcode.New(blob, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
