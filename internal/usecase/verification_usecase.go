package usecase

import (
	"context"
	"time"

	"swapmeet/internal/domain/entity"

	"github.com/google/uuid"
)

// VerifyTokenInput represents the input for proof-token verification.
type VerifyTokenInput struct {
	Token          string    `json:"token"`
	ExpectedSwapID uuid.UUID `json:"expected_swap_id"`
	ExpectedUserID uuid.UUID `json:"expected_user_id"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
}

// VerifyTokenResult is the decoded payload plus the verification timestamp.
type VerifyTokenResult struct {
	Payload    *entity.TokenPayload `json:"payload"`
	VerifiedAt time.Time            `json:"verified_at"`
	DistanceM  *float64             `json:"distance_m,omitempty"` // set when both sides supplied coordinates
}

// VerifyLocationCodeInput represents the input for scan-in-place verification.
type VerifyLocationCodeInput struct {
	Code               string    `json:"code"`
	ExpectedLocationID uuid.UUID `json:"expected_location_id"`
	ExpectedUserID     uuid.UUID `json:"expected_user_id"`
}

// VerificationUsecase mints and checks proof-of-presence credentials.
type VerificationUsecase interface {
	// IssueToken mints a sealed proof token bound to swap, user and optionally
	// a coordinate.
	IssueToken(ctx context.Context, swapID, userID uuid.UUID, lat, lng *float64) (string, error)

	// VerifyToken opens a token and checks expiry, swap, user and proximity in
	// that order.
	VerifyToken(ctx context.Context, input *VerifyTokenInput) (*VerifyTokenResult, error)

	// IssueLocationCode mints the lighter scan-in-place code bound to a
	// location and user.
	IssueLocationCode(ctx context.Context, locationID, userID uuid.UUID) (string, error)

	// VerifyLocationCode checks a scan-in-place code.
	VerifyLocationCode(ctx context.Context, input *VerifyLocationCodeInput) (*entity.LocationCodePayload, error)

	// TokenQR renders a sealed token as a PNG QR image.
	TokenQR(ctx context.Context, blob string) ([]byte, error)
}
