// Package osrm implements the route-planning collaborator against an
// OSRM-compatible HTTP route service.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/infra/geo"

	"github.com/pkg/errors"
)

const defaultTimeout = 8 * time.Second

type routePlanner struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewRoutePlanner creates a planner against an OSRM-compatible endpoint.
// Returns nil when routing is disabled; callers treat a nil planner as
// "geometric midpoint only".
func NewRoutePlanner(cfg *config.RoutingConfig, logger *slog.Logger) service.RoutePlanner {
	if cfg == nil || !cfg.Enabled || cfg.BaseURL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &routePlanner{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// osrmResponse is the subset of the OSRM route response we consume.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat] pairs
		} `json:"geometry"`
	} `json:"routes"`
}

// PlanRoute queries the route service and converts the returned geometry into
// legs between consecutive polyline points.
func (p *routePlanner) PlanRoute(ctx context.Context, fromLat, fromLng, toLat, toLng float64, mode service.TransportMode) (*service.Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		p.baseURL, profileFor(mode), fromLng, fromLat, toLng, toLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "route request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("route service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read route response")
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode route response")
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, errors.Errorf("route service returned code %q", parsed.Code)
	}

	route := buildRoute(parsed.Routes[0].Geometry.Coordinates)
	if route == nil {
		return nil, errors.New("route geometry has fewer than two points")
	}

	return route, nil
}

// buildRoute converts a [lng, lat] polyline into legs. The total is the sum of
// the leg distances, so callers can walk the legs to any fraction of it.
func buildRoute(coordinates [][]float64) *service.Route {
	if len(coordinates) < 2 {
		return nil
	}

	route := &service.Route{Legs: make([]service.RouteLeg, 0, len(coordinates)-1)}
	for i := 1; i < len(coordinates); i++ {
		prev, curr := coordinates[i-1], coordinates[i]
		if len(prev) < 2 || len(curr) < 2 {
			continue
		}

		leg := service.RouteLeg{
			StartLat:   prev[1],
			StartLng:   prev[0],
			EndLat:     curr[1],
			EndLng:     curr[0],
			DistanceKm: geo.Distance(prev[1], prev[0], curr[1], curr[0]),
		}
		route.Legs = append(route.Legs, leg)
		route.TotalDistanceKm += leg.DistanceKm
	}

	if len(route.Legs) == 0 || route.TotalDistanceKm <= 0 {
		return nil
	}

	return route
}

// profileFor maps transport modes to OSRM profiles. Transit has no OSRM
// profile, so it rides on the driving network as the nearest approximation.
func profileFor(mode service.TransportMode) string {
	switch mode {
	case service.TransportCycling:
		return "cycling"
	case service.TransportDriving, service.TransportTransit:
		return "driving"
	default:
		return "walking"
	}
}
