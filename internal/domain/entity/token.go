package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenPayload is the plaintext content of a proof-of-presence token. The
// caller only ever sees the sealed, base64-encoded blob; the payload is
// recovered during verification.
type TokenPayload struct {
	SwapID    uuid.UUID `json:"swap_id"`
	UserID    uuid.UUID `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Secret    string    `json:"secret"` // Single-use random secret bound to this issuance.
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// LocationCodePayload is the plaintext content of a scan-in-place code. It is
// the lighter, shorter-lived variant bound to a location instead of a swap.
type LocationCodePayload struct {
	LocationID uuid.UUID `json:"location_id"`
	UserID     uuid.UUID `json:"user_id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Secret     string    `json:"secret"`
}
