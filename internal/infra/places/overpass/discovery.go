// Package overpass implements the place-discovery collaborator against an
// Overpass API endpoint.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	"swapmeet/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTimeout = 8 * time.Second

// categoryFilters maps location categories to Overpass tag filters.
var categoryFilters = map[entity.LocationCategory]string{
	entity.CategoryLibrary:         `["amenity"="library"]`,
	entity.CategoryCafe:            `["amenity"="cafe"]`,
	entity.CategoryBookstore:       `["shop"="books"]`,
	entity.CategoryCommunityCenter: `["amenity"="community_centre"]`,
	entity.CategoryHotel:           `["tourism"="hotel"]`,
	entity.CategoryRestaurant:      `["amenity"="restaurant"]`,
	entity.CategoryMall:            `["shop"="mall"]`,
	entity.CategorySchool:          `["amenity"="school"]`,
	entity.CategoryTrainStation:    `["railway"="station"]`,
	entity.CategoryPark:            `["leisure"="park"]`,
}

type placeDiscovery struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewPlaceDiscovery creates a discovery client against an Overpass endpoint.
// Returns nil when discovery is disabled; callers treat a nil client as
// "curated candidates only".
func NewPlaceDiscovery(cfg *config.PlacesConfig, logger *slog.Logger) service.PlaceDiscovery {
	if cfg == nil || !cfg.Enabled || cfg.BaseURL == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &placeDiscovery{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// overpassResponse is the subset of the Overpass JSON output we consume.
type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// NearbyPlaces queries Overpass for named nodes of the category around the
// coordinate. Unnamed nodes are dropped since they cannot be suggested.
func (d *placeDiscovery) NearbyPlaces(ctx context.Context, lat, lng, radiusKm float64, category entity.LocationCategory) ([]service.DiscoveredPlace, error) {
	filter, ok := categoryFilters[category]
	if !ok {
		return nil, nil
	}

	query := fmt.Sprintf("[out:json][timeout:10];node%s(around:%.0f,%f,%f);out;",
		filter, radiusKm*1000, lat, lng)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.baseURL+"/api/interpreter", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "overpass request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read overpass response")
	}

	var parsed overpassResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode overpass response")
	}

	places := make([]service.DiscoveredPlace, 0, len(parsed.Elements))
	for _, element := range parsed.Elements {
		name := element.Tags["name"]
		if name == "" {
			continue
		}

		places = append(places, service.DiscoveredPlace{
			Name:      name,
			Category:  category,
			Latitude:  element.Lat,
			Longitude: element.Lon,
			Address:   element.Tags["addr:city"],
		})
	}

	d.logger.Debug("overpass discovery finished",
		slog.String("category", string(category)),
		slog.Int("places", len(places)),
	)

	return places, nil
}
