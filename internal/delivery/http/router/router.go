// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"swapmeet/internal/delivery/http/middleware"
	"swapmeet/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SwapHandler         *handler.SwapHandler
	MeetupHandler       *handler.MeetupHandler
	LocationHandler     *handler.LocationHandler
	VerificationHandler *handler.VerificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	swapHandler         *handler.SwapHandler
	meetupHandler       *handler.MeetupHandler
	locationHandler     *handler.LocationHandler
	verificationHandler *handler.VerificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		swapHandler:         params.SwapHandler,
		meetupHandler:       params.MeetupHandler,
		locationHandler:     params.LocationHandler,
		verificationHandler: params.VerificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Swap lifecycle routes, all authenticated
	swapGroup := e.Group("/swaps")
	swapGroup.Use(r.authMiddleware.Authenticate)
	{
		swapGroup.POST("", r.swapHandler.Propose)
		swapGroup.GET("", r.swapHandler.ListSwaps)
		swapGroup.GET("/:id", r.swapHandler.GetSwap)
		swapGroup.POST("/:id/accept", r.swapHandler.Accept)
		swapGroup.POST("/:id/confirm", r.swapHandler.Confirm)
		swapGroup.POST("/:id/cancel", r.swapHandler.Cancel)
		swapGroup.POST("/:id/extension", r.swapHandler.RequestExtension)
		swapGroup.POST("/:id/extension/respond", r.swapHandler.RespondToExtension)

		// Proof-of-presence credentials for a swap
		swapGroup.GET("/:id/token", r.verificationHandler.IssueToken)
		swapGroup.GET("/:id/qr", r.verificationHandler.TokenQR)
	}

	// Meetup discovery requires authentication
	meetupGroup := e.Group("/meetup")
	meetupGroup.Use(r.authMiddleware.Authenticate)
	{
		meetupGroup.POST("/suggest", r.meetupHandler.SuggestMeetup)
	}

	// Curated locations: reads are public, writes require authentication
	locationGroup := e.Group("/locations")
	{
		locationGroup.GET("/nearby", r.locationHandler.ListNearby)
		locationGroup.GET("/:id", r.locationHandler.GetLocation)
	}

	authedLocationGroup := e.Group("/locations")
	authedLocationGroup.Use(r.authMiddleware.Authenticate)
	{
		authedLocationGroup.POST("", r.locationHandler.CreateLocation)
		authedLocationGroup.POST("/:id/code", r.verificationHandler.IssueLocationCode)
	}

	// Scan-in-place verification
	verificationGroup := e.Group("/verification")
	verificationGroup.Use(r.authMiddleware.Authenticate)
	{
		verificationGroup.POST("/location-code", r.verificationHandler.VerifyLocationCode)
	}
}
