// Package impl contains the concrete use case services.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/infra/geo"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultTokenTTL         = 24 * time.Hour
	defaultLocationCodeTTL  = 30 * time.Minute
	defaultProximityRadiusM = 100.0
)

type verificationService struct {
	cipher        service.TokenCipher
	qrcodeService service.QRCodeService

	tokenTTL         time.Duration
	locationCodeTTL  time.Duration
	proximityRadiusM float64

	// now is injectable for deterministic expiry tests.
	now func() time.Time
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(cipher service.TokenCipher, qrcodeService service.QRCodeService, cfg *config.Config) usecase.VerificationUsecase {
	// If ProofToken is not configured, provide a default configuration
	if cfg.ProofToken == nil {
		cfg.ProofToken = &config.ProofTokenConfig{
			TokenTTL:         defaultTokenTTL,
			LocationCodeTTL:  defaultLocationCodeTTL,
			ProximityRadiusM: defaultProximityRadiusM,
		}
	}

	svc := &verificationService{
		cipher:           cipher,
		qrcodeService:    qrcodeService,
		tokenTTL:         cfg.ProofToken.TokenTTL,
		locationCodeTTL:  cfg.ProofToken.LocationCodeTTL,
		proximityRadiusM: cfg.ProofToken.ProximityRadiusM,
		now:              time.Now,
	}
	if svc.tokenTTL <= 0 {
		svc.tokenTTL = defaultTokenTTL
	}
	if svc.locationCodeTTL <= 0 {
		svc.locationCodeTTL = defaultLocationCodeTTL
	}
	if svc.proximityRadiusM <= 0 {
		svc.proximityRadiusM = defaultProximityRadiusM
	}

	return svc
}

// IssueToken mints a sealed proof token bound to swap, user and optionally a coordinate.
func (s *verificationService) IssueToken(_ context.Context, swapID, userID uuid.UUID, lat, lng *float64) (string, error) {
	if (lat == nil) != (lng == nil) {
		return "", domainerrors.ErrValidation.WithDetails("latitude and longitude must be supplied together")
	}
	if lat != nil && !geo.IsValidCoordinate(*lat, *lng) {
		return "", domainerrors.ErrValidation.WithDetails("coordinates out of range")
	}

	secret, err := newSecret()
	if err != nil {
		return "", err
	}

	issuedAt := s.now()
	payload := entity.TokenPayload{
		SwapID:    swapID,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.tokenTTL),
		Secret:    secret,
		Latitude:  lat,
		Longitude: lng,
	}

	return s.seal(&payload)
}

// VerifyToken opens a token and checks expiry, swap, user and proximity in that order.
func (s *verificationService) VerifyToken(_ context.Context, input *usecase.VerifyTokenInput) (*usecase.VerifyTokenResult, error) {
	plaintext, err := s.cipher.Open(input.Token)
	if err != nil {
		return nil, domainerrors.ErrVerification
	}

	var payload entity.TokenPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, domainerrors.ErrVerification
	}

	now := s.now()
	if !payload.ExpiresAt.After(now) {
		return nil, domainerrors.ErrTokenExpired
	}
	if payload.SwapID != input.ExpectedSwapID {
		return nil, domainerrors.ErrSwapMismatch
	}
	if payload.UserID != input.ExpectedUserID {
		return nil, domainerrors.ErrUserMismatch
	}

	result := &usecase.VerifyTokenResult{
		Payload:    &payload,
		VerifiedAt: now,
	}

	// Proximity is only enforced when both the token and the caller carry coordinates.
	if payload.Latitude != nil && input.Latitude != nil && input.Longitude != nil {
		distanceM := geo.DistanceMeters(*payload.Latitude, *payload.Longitude, *input.Latitude, *input.Longitude)
		result.DistanceM = &distanceM
		if distanceM > s.proximityRadiusM {
			return nil, domainerrors.ErrLocationMismatch.WithDetails(
				fmt.Sprintf("measured distance %.0f m exceeds %.0f m", distanceM, s.proximityRadiusM))
		}
	}

	return result, nil
}

// IssueLocationCode mints the lighter scan-in-place code bound to a location and user.
func (s *verificationService) IssueLocationCode(_ context.Context, locationID, userID uuid.UUID) (string, error) {
	secret, err := newSecret()
	if err != nil {
		return "", err
	}

	issuedAt := s.now()
	payload := entity.LocationCodePayload{
		LocationID: locationID,
		UserID:     userID,
		IssuedAt:   issuedAt,
		ExpiresAt:  issuedAt.Add(s.locationCodeTTL),
		Secret:     secret,
	}

	return s.seal(&payload)
}

// VerifyLocationCode checks a scan-in-place code.
func (s *verificationService) VerifyLocationCode(_ context.Context, input *usecase.VerifyLocationCodeInput) (*entity.LocationCodePayload, error) {
	plaintext, err := s.cipher.Open(input.Code)
	if err != nil {
		return nil, domainerrors.ErrVerification
	}

	var payload entity.LocationCodePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, domainerrors.ErrVerification
	}

	if !payload.ExpiresAt.After(s.now()) {
		return nil, domainerrors.ErrTokenExpired
	}
	if payload.LocationID != input.ExpectedLocationID {
		return nil, domainerrors.ErrLocationMismatch
	}
	if payload.UserID != input.ExpectedUserID {
		return nil, domainerrors.ErrUserMismatch
	}

	return &payload, nil
}

// TokenQR renders a sealed token as a PNG QR image.
func (s *verificationService) TokenQR(_ context.Context, blob string) ([]byte, error) {
	png, err := s.qrcodeService.RenderTokenQR(blob)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render token QR")
	}

	return png, nil
}

func (s *verificationService) seal(payload any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal token payload")
	}

	blob, err := s.cipher.Seal(plaintext)
	if err != nil {
		return "", errors.Wrap(err, "failed to seal token payload")
	}

	return blob, nil
}

// newSecret returns the single-use random secret embedded in each issuance.
func newSecret() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate token secret")
	}

	return hex.EncodeToString(buf), nil
}
