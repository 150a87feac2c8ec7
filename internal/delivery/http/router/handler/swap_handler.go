// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"swapmeet/internal/delivery/http/middleware"
	"swapmeet/internal/delivery/http/response"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SwapHandlerParams holds dependencies for SwapHandler, injected by Fx.
type SwapHandlerParams struct {
	fx.In

	SwapUC usecase.SwapUsecase
	Logger *slog.Logger
}

// SwapHandler holds dependencies for swap-lifecycle handlers.
type SwapHandler struct {
	swapUC usecase.SwapUsecase
	logger *slog.Logger
}

// NewSwapHandler is the constructor for SwapHandler.
func NewSwapHandler(params SwapHandlerParams) *SwapHandler {
	return &SwapHandler{
		swapUC: params.SwapUC,
		logger: params.Logger,
	}
}

// ProposeSwapRequest represents the request body for proposing a swap.
type ProposeSwapRequest struct {
	ReceiverID    uuid.UUID  `json:"receiver_id" validate:"required"`
	InitiatorItem uuid.UUID  `json:"initiator_item" validate:"required"`
	ReceiverItem  *uuid.UUID `json:"receiver_item,omitempty"`
	IsBorrowing   bool       `json:"is_borrowing"`
	BorrowDays    int        `json:"borrow_days,omitempty" validate:"omitempty,min=1"`
}

// AcceptSwapRequest represents the request body for accepting a swap.
type AcceptSwapRequest struct {
	MeetupLocation uuid.UUID `json:"meetup_location" validate:"required"`
	MeetupTime     time.Time `json:"meetup_time" validate:"required"`
}

// ConfirmSwapRequest represents the request body for confirming presence.
type ConfirmSwapRequest struct {
	Proof     string   `json:"proof" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

// RequestExtensionRequest represents the request body for a borrow extension.
type RequestExtensionRequest struct {
	DaysRequested int    `json:"days_requested" validate:"required,min=1"`
	Reason        string `json:"reason"`
}

// RespondExtensionRequest represents the decision on a pending extension.
type RespondExtensionRequest struct {
	Approve      bool   `json:"approve"`
	ResponseNote string `json:"response_note,omitempty"`
}

// Propose handles the swap proposal request. The authenticated user is always
// the initiator.
func (h *SwapHandler) Propose(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req ProposeSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid swap proposal input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.ProposeSwapInput{
		InitiatorID:   userID,
		ReceiverID:    req.ReceiverID,
		InitiatorItem: req.InitiatorItem,
		ReceiverItem:  req.ReceiverItem,
		IsBorrowing:   req.IsBorrowing,
		BorrowDays:    req.BorrowDays,
	}

	swap, err := h.swapUC.Propose(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, swap, "Swap proposed successfully")
}

// Accept handles the swap acceptance request.
func (h *SwapHandler) Accept(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	var req AcceptSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid accept input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.AcceptSwapInput{
		MeetupLocation: req.MeetupLocation,
		MeetupTime:     req.MeetupTime,
	}

	swap, err := h.swapUC.Accept(c.Request().Context(), swapID, userID, input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, swap, "Swap accepted successfully")
}

// Confirm handles one party's proof-of-presence submission.
func (h *SwapHandler) Confirm(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	var req ConfirmSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid confirm input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.ConfirmSwapInput{
		Proof:     req.Proof,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	result, err := h.swapUC.Confirm(c.Request().Context(), swapID, userID, input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	message := "Confirmation recorded, waiting for the other party"
	if result.Completed {
		message = "Swap completed successfully"
	}

	return response.Success(c, http.StatusOK, result, message)
}

// Cancel handles the swap cancellation request.
func (h *SwapHandler) Cancel(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	swap, err := h.swapUC.Cancel(c.Request().Context(), swapID, userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, swap, "Swap cancelled successfully")
}

// RequestExtension handles a borrower's request for more time.
func (h *SwapHandler) RequestExtension(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	var req RequestExtensionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid extension input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.RequestExtensionInput{
		DaysRequested: req.DaysRequested,
		Reason:        req.Reason,
	}

	extension, err := h.swapUC.RequestExtension(c.Request().Context(), swapID, userID, input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, extension, "Extension requested successfully")
}

// RespondToExtension handles the lender's decision on a pending extension.
func (h *SwapHandler) RespondToExtension(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	var req RespondExtensionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid extension response input")
	}

	input := &usecase.RespondExtensionInput{
		Approve:      req.Approve,
		ResponseNote: req.ResponseNote,
	}

	extension, err := h.swapUC.RespondToExtension(c.Request().Context(), swapID, userID, input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, extension, "Extension response recorded successfully")
}

// GetSwap handles retrieving a single swap.
func (h *SwapHandler) GetSwap(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swapID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid swap ID")
	}

	swap, err := h.swapUC.GetSwap(c.Request().Context(), swapID, userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, swap, "Swap retrieved successfully")
}

// ListSwaps handles retrieving all swaps of the authenticated user.
func (h *SwapHandler) ListSwaps(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	swaps, err := h.swapUC.ListSwaps(c.Request().Context(), userID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, swaps, "Swaps retrieved successfully")
}

// getUserID extracts the user ID from the context
func (h *SwapHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return userID, nil
}

// handleAppError handles application errors
func (h *SwapHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
