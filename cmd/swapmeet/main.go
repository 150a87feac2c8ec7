package main

import (
	"context"
	"log/slog"
	"os"

	"swapmeet/config"
	"swapmeet/internal/delivery"
	"swapmeet/internal/delivery/http"
	"swapmeet/internal/delivery/http/middleware"
	"swapmeet/internal/delivery/http/router/handler"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/infra/auth"
	logs "swapmeet/internal/infra/log"
	"swapmeet/internal/infra/persistence/postgres"
	"swapmeet/internal/infra/places/overpass"
	"swapmeet/internal/infra/pubsub"
	"swapmeet/internal/infra/qrcode"
	"swapmeet/internal/infra/routing/osrm"
	"swapmeet/internal/infra/token"
	"swapmeet/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewSwapRepository,
			postgres.NewItemRepository,
			postgres.NewLocationRepository,
			postgres.NewExchangeRepository,
			postgres.NewConfirmationRepository,
			postgres.NewExtensionRepository,
			postgres.NewTrustRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			newKeyProvider,
			token.NewCipher,
			newQRCodeService,
			newRoutePlanner,
			newPlaceDiscovery,
			pubsub.NewEventPublisher,
		),
	)
}

// newKeyProvider derives the proof-token AEAD key from the configured secret.
func newKeyProvider(cfg *config.Config) service.KeyProvider {
	return token.NewKeyProvider(cfg.SecretKey.Token)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newRoutePlanner creates the optional OSRM route planner. A nil planner makes
// meetup discovery fall back to the geometric midpoint.
func newRoutePlanner(cfg *config.Config, logger *slog.Logger) service.RoutePlanner {
	return osrm.NewRoutePlanner(cfg.Routing, logger)
}

// newPlaceDiscovery creates the optional Overpass place discovery. A nil
// discovery leaves meetup candidates curated-only.
func newPlaceDiscovery(cfg *config.Config, logger *slog.Logger) service.PlaceDiscovery {
	return overpass.NewPlaceDiscovery(cfg.Places, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewVerificationService,
			impl.NewSwapService,
			impl.NewMeetupService,
			impl.NewLocationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSwapHandler,
			handler.NewMeetupHandler,
			handler.NewLocationHandler,
			handler.NewVerificationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
