package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"swapmeet/internal/delivery/http/middleware"
	"swapmeet/internal/delivery/http/response"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerificationHandlerParams holds dependencies for VerificationHandler, injected by Fx.
type VerificationHandlerParams struct {
	fx.In

	VerificationUC usecase.VerificationUsecase
	Logger         *slog.Logger
}

// VerificationHandler holds dependencies for proof-of-presence handlers.
type VerificationHandler struct {
	verificationUC usecase.VerificationUsecase
	logger         *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler.
func NewVerificationHandler(params VerificationHandlerParams) *VerificationHandler {
	return &VerificationHandler{
		verificationUC: params.VerificationUC,
		logger:         params.Logger,
	}
}

// VerifyLocationCodeRequest represents the request body for a scan-in-place check.
type VerifyLocationCodeRequest struct {
	Code       string    `json:"code" validate:"required"`
	LocationID uuid.UUID `json:"location_id" validate:"required"`
}

// IssueToken mints a fresh proof token for the authenticated user at a swap.
// Optional lat/lng query parameters bind the token to a coordinate.
func (h *VerificationHandler) IssueToken(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	lat, lng, err := h.optionalCoordinates(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lat/lng query parameters")
	}

	blob, err := h.verificationUC.IssueToken(c.Request().Context(), swapID, userID, lat, lng)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"token": blob}, "Proof token issued successfully")
}

// TokenQR mints a fresh proof token and renders it as a PNG QR image, ready to
// be shown to the other party at the meetup.
func (h *VerificationHandler) TokenQR(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	lat, lng, err := h.optionalCoordinates(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid lat/lng query parameters")
	}

	ctx := c.Request().Context()

	blob, err := h.verificationUC.IssueToken(ctx, swapID, userID, lat, lng)
	if err != nil {
		return h.handleAppError(c, err)
	}

	png, err := h.verificationUC.TokenQR(ctx, blob)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// IssueLocationCode mints a scan-in-place code for the authenticated user at a
// curated location.
func (h *VerificationHandler) IssueLocationCode(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid location ID")
	}

	code, err := h.verificationUC.IssueLocationCode(c.Request().Context(), locationID, userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"code": code}, "Location code issued successfully")
}

// VerifyLocationCode checks a scanned code against the expected location and
// the authenticated user.
func (h *VerificationHandler) VerifyLocationCode(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req VerifyLocationCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location code input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	payload, err := h.verificationUC.VerifyLocationCode(c.Request().Context(), &usecase.VerifyLocationCodeInput{
		Code:               req.Code,
		ExpectedLocationID: req.LocationID,
		ExpectedUserID:     userID,
	})
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, payload, "Location code verified successfully")
}

// optionalCoordinates parses the lat/lng query parameters. Both must be given
// together; absent parameters yield nil pointers.
func (h *VerificationHandler) optionalCoordinates(c echo.Context) (*float64, *float64, error) {
	rawLat := c.QueryParam("lat")
	rawLng := c.QueryParam("lng")
	if rawLat == "" && rawLng == "" {
		return nil, nil, nil
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, nil, err
	}

	lng, err := strconv.ParseFloat(rawLng, 64)
	if err != nil {
		return nil, nil, err
	}

	return &lat, &lng, nil
}

// getUserID extracts the user ID from the context
func (h *VerificationHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// handleAppError handles application errors
func (h *VerificationHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
