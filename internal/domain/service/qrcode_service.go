package service

// QRCodeService defines the interface for QR code rendering of opaque token blobs.
type QRCodeService interface {
	// RenderTokenQR renders the sealed token blob as a PNG image.
	RenderTokenQR(blob string) ([]byte, error)
}
