package handler

import (
	"log/slog"
	"net/http"

	"swapmeet/internal/delivery/http/response"
	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// MeetupHandlerParams holds dependencies for MeetupHandler, injected by Fx.
type MeetupHandlerParams struct {
	fx.In

	MeetupUC usecase.MeetupUsecase
	Logger   *slog.Logger
}

// MeetupHandler holds dependencies for meetup-discovery handlers.
type MeetupHandler struct {
	meetupUC usecase.MeetupUsecase
	logger   *slog.Logger
}

// NewMeetupHandler is the constructor for MeetupHandler.
func NewMeetupHandler(params MeetupHandlerParams) *MeetupHandler {
	return &MeetupHandler{
		meetupUC: params.MeetupUC,
		logger:   params.Logger,
	}
}

// SuggestMeetupRequest represents the request body for meetup discovery.
type SuggestMeetupRequest struct {
	Party1Lat   float64                   `json:"party1_lat" validate:"min=-90,max=90"`
	Party1Lng   float64                   `json:"party1_lng" validate:"min=-180,max=180"`
	Party2Lat   float64                   `json:"party2_lat" validate:"min=-90,max=90"`
	Party2Lng   float64                   `json:"party2_lng" validate:"min=-180,max=180"`
	Preferences *MeetupPreferencesRequest `json:"preferences,omitempty"`
}

// MeetupPreferencesRequest carries the optional discovery knobs.
type MeetupPreferencesRequest struct {
	TransportMode  string   `json:"transport_mode,omitempty"`
	PreferredTypes []string `json:"preferred_types,omitempty"`
	MaxDistanceKm  float64  `json:"max_distance_km,omitempty" validate:"omitempty,min=0"`
}

// SuggestMeetup handles the meetup suggestion request.
func (h *MeetupHandler) SuggestMeetup(c echo.Context) error {
	var req SuggestMeetupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid meetup suggestion input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.SuggestMeetupInput{
		Party1Lat: req.Party1Lat,
		Party1Lng: req.Party1Lng,
		Party2Lat: req.Party2Lat,
		Party2Lng: req.Party2Lng,
	}
	if req.Preferences != nil {
		prefs := &usecase.MeetupPreferences{
			TransportMode: service.TransportMode(req.Preferences.TransportMode),
			MaxDistanceKm: req.Preferences.MaxDistanceKm,
		}
		for _, t := range req.Preferences.PreferredTypes {
			prefs.PreferredTypes = append(prefs.PreferredTypes, entity.LocationCategory(t))
		}
		input.Preferences = prefs
	}

	suggestion, err := h.meetupUC.SuggestMeetup(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, suggestion, "Meetup suggestions computed successfully")
}

// handleAppError handles application errors
func (h *MeetupHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
