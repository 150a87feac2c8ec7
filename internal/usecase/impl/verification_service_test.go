package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"swapmeet/config"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerificationService() (*verificationService, usecase.VerificationUsecase) {
	svc := NewVerificationService(newTestCipher(), nil, &config.Config{})

	return svc.(*verificationService), svc
}

func TestVerificationService_TokenRoundTrip(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	blob, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	result, err := svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	require.NoError(t, err)

	assert.Equal(t, swapID, result.Payload.SwapID)
	assert.Equal(t, userID, result.Payload.UserID)
	assert.NotEmpty(t, result.Payload.Secret)
	assert.Nil(t, result.DistanceM)
}

func TestVerificationService_TokensAreUnique(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	first, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)
	second, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerificationService_TokenExpiry(t *testing.T) {
	raw, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	issued := time.Now()
	raw.now = func() time.Time { return issued }

	blob, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)

	// Just inside the window it still verifies.
	raw.now = func() time.Time { return issued.Add(24*time.Hour - time.Second) }
	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	require.NoError(t, err)

	// At the boundary it is expired.
	raw.now = func() time.Time { return issued.Add(24 * time.Hour) }
	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestVerificationService_Mismatches(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	blob, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: uuid.New(),
		ExpectedUserID: userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrSwapMismatch))

	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: uuid.New(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserMismatch))
}

func TestVerificationService_TamperedToken(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	blob, err := svc.IssueToken(ctx, swapID, userID, nil, nil)
	require.NoError(t, err)

	tampered := []byte(blob)
	tampered[len(tampered)/2] ^= 0x01

	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          string(tampered),
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrVerification))

	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          "garbage",
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrVerification))
}

func TestVerificationService_Proximity(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	lat, lng := 40.0, -74.0
	blob, err := svc.IssueToken(ctx, swapID, userID, &lat, &lng)
	require.NoError(t, err)

	// Roughly 50 m north of the issuance point.
	nearLat, nearLng := lat+0.00045, lng
	result, err := svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
		Latitude:       &nearLat,
		Longitude:      &nearLng,
	})
	require.NoError(t, err)
	require.NotNil(t, result.DistanceM)
	assert.InDelta(t, 50.0, *result.DistanceM, 5.0)

	// Roughly 200 m away exceeds the 100 m radius.
	farLat, farLng := lat+0.0018, lng
	_, err = svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
		Latitude:       &farLat,
		Longitude:      &farLng,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrLocationMismatch))
}

func TestVerificationService_ProximitySkippedWithoutCoordinates(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	swapID := uuid.New()
	userID := uuid.New()

	lat, lng := 40.0, -74.0
	blob, err := svc.IssueToken(ctx, swapID, userID, &lat, &lng)
	require.NoError(t, err)

	// Caller without coordinates skips the proximity check.
	result, err := svc.VerifyToken(ctx, &usecase.VerifyTokenInput{
		Token:          blob,
		ExpectedSwapID: swapID,
		ExpectedUserID: userID,
	})
	require.NoError(t, err)
	assert.Nil(t, result.DistanceM)
}

func TestVerificationService_IssueToken_InvalidCoordinates(t *testing.T) {
	_, svc := newTestVerificationService()
	ctx := context.Background()

	lat := 40.0
	_, err := svc.IssueToken(ctx, uuid.New(), uuid.New(), &lat, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))

	badLat, lng := 91.0, 0.0
	_, err = svc.IssueToken(ctx, uuid.New(), uuid.New(), &badLat, &lng)
	assert.True(t, errors.Is(err, domainerrors.ErrValidation))
}

func TestVerificationService_LocationCode(t *testing.T) {
	raw, svc := newTestVerificationService()
	ctx := context.Background()

	locationID := uuid.New()
	userID := uuid.New()

	issued := time.Now()
	raw.now = func() time.Time { return issued }

	code, err := svc.IssueLocationCode(ctx, locationID, userID)
	require.NoError(t, err)

	payload, err := svc.VerifyLocationCode(ctx, &usecase.VerifyLocationCodeInput{
		Code:               code,
		ExpectedLocationID: locationID,
		ExpectedUserID:     userID,
	})
	require.NoError(t, err)
	assert.Equal(t, locationID, payload.LocationID)

	_, err = svc.VerifyLocationCode(ctx, &usecase.VerifyLocationCodeInput{
		Code:               code,
		ExpectedLocationID: uuid.New(),
		ExpectedUserID:     userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrLocationMismatch))

	// Location codes expire on the shorter 30 minute window.
	raw.now = func() time.Time { return issued.Add(30 * time.Minute) }
	_, err = svc.VerifyLocationCode(ctx, &usecase.VerifyLocationCodeInput{
		Code:               code,
		ExpectedLocationID: locationID,
		ExpectedUserID:     userID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}
