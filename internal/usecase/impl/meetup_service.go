package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"swapmeet/config"
	"swapmeet/internal/domain/entity"
	domainerrors "swapmeet/internal/domain/errors"
	"swapmeet/internal/domain/repository"
	"swapmeet/internal/domain/service"
	"swapmeet/internal/infra/geo"
	"swapmeet/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultSearchRadiusKm   = 5.0
	defaultMaxCandidates    = 10
	defaultMaxCategories    = 5
	defaultDedupRadiusM     = 50.0
	defaultCollabTimeout    = 8 * time.Second
	discoveredSafetyScore   = 2.5 // neutral prior for places without a community safety score
	discoveredDefaultRating = 3.0
)

// typePriorityWeight is the fixed descending preference table for place
// categories. Multiplied by 10 in the score.
var typePriorityWeight = map[entity.LocationCategory]float64{
	entity.CategoryLibrary:         1.0,
	entity.CategoryCafe:            0.9,
	entity.CategoryBookstore:       0.8,
	entity.CategoryCommunityCenter: 0.7,
	entity.CategoryHotel:           0.6,
	entity.CategoryRestaurant:      0.5,
	entity.CategoryMall:            0.4,
	entity.CategorySchool:          0.3,
	entity.CategoryTrainStation:    0.2,
	entity.CategoryPark:            0.1,
}

type meetupService struct {
	locationRepo   repository.LocationRepository
	routePlanner   service.RoutePlanner   // optional; nil means geometric midpoint only
	placeDiscovery service.PlaceDiscovery // optional; nil means curated-only candidates
	logger         *slog.Logger

	searchRadiusKm float64
	maxCandidates  int
	maxCategories  int
	dedupRadiusM   float64
	collabTimeout  time.Duration
}

// NewMeetupService creates a new meetup discovery service instance
func NewMeetupService(
	locationRepo repository.LocationRepository,
	routePlanner service.RoutePlanner,
	placeDiscovery service.PlaceDiscovery,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.MeetupUsecase {
	// If Meetup is not configured, provide a default configuration
	if cfg.Meetup == nil {
		cfg.Meetup = &config.MeetupConfig{
			SearchRadiusKm: defaultSearchRadiusKm,
			MaxCandidates:  defaultMaxCandidates,
			MaxCategories:  defaultMaxCategories,
			DedupRadiusM:   defaultDedupRadiusM,
		}
	}

	svc := &meetupService{
		locationRepo:   locationRepo,
		routePlanner:   routePlanner,
		placeDiscovery: placeDiscovery,
		logger:         logger,
		searchRadiusKm: cfg.Meetup.SearchRadiusKm,
		maxCandidates:  cfg.Meetup.MaxCandidates,
		maxCategories:  cfg.Meetup.MaxCategories,
		dedupRadiusM:   cfg.Meetup.DedupRadiusM,
		collabTimeout:  defaultCollabTimeout,
	}
	if svc.searchRadiusKm <= 0 {
		svc.searchRadiusKm = defaultSearchRadiusKm
	}
	if svc.maxCandidates <= 0 {
		svc.maxCandidates = defaultMaxCandidates
	}
	if svc.maxCategories <= 0 {
		svc.maxCategories = defaultMaxCategories
	}
	if svc.dedupRadiusM <= 0 {
		svc.dedupRadiusM = defaultDedupRadiusM
	}

	return svc
}

// SuggestMeetup computes a fair midpoint between the two parties and ranks
// nearby public locations around it.
func (s *meetupService) SuggestMeetup(ctx context.Context, input *usecase.SuggestMeetupInput) (*usecase.MeetupSuggestion, error) {
	if !geo.IsValidCoordinate(input.Party1Lat, input.Party1Lng) ||
		!geo.IsValidCoordinate(input.Party2Lat, input.Party2Lng) {
		return nil, domainerrors.ErrValidation.WithDetails("coordinates out of range")
	}

	prefs := input.Preferences
	if prefs == nil {
		prefs = &usecase.MeetupPreferences{}
	}

	radiusKm := s.searchRadiusKm
	if prefs.MaxDistanceKm > 0 {
		radiusKm = prefs.MaxDistanceKm
	}

	midLat, midLng, routeBased := s.resolveMidpoint(ctx, input, prefs.TransportMode)

	candidates, err := s.collectCandidates(ctx, midLat, midLng, radiusKm, prefs.PreferredTypes)
	if err != nil {
		return nil, err
	}

	scored := s.scoreCandidates(candidates, midLat, midLng, input, prefs.PreferredTypes)
	if len(scored) > s.maxCandidates {
		scored = scored[:s.maxCandidates]
	}

	party1ToMid := geo.Distance(input.Party1Lat, input.Party1Lng, midLat, midLng)
	party2ToMid := geo.Distance(input.Party2Lat, input.Party2Lng, midLat, midLng)

	return &usecase.MeetupSuggestion{
		MidpointLat:         midLat,
		MidpointLng:         midLng,
		RouteBased:          routeBased,
		Candidates:          scored,
		Party1ToMidpointKm:  party1ToMid,
		Party2ToMidpointKm:  party2ToMid,
		TotalTravelBurdenKm: party1ToMid + party2ToMid,
	}, nil
}

// resolveMidpoint prefers the route-based midpoint and degrades to the
// geometric average on any planner absence, failure or timeout.
func (s *meetupService) resolveMidpoint(ctx context.Context, input *usecase.SuggestMeetupInput, mode service.TransportMode) (lat, lng float64, routeBased bool) {
	lat, lng = geo.Midpoint(input.Party1Lat, input.Party1Lng, input.Party2Lat, input.Party2Lng)

	if s.routePlanner == nil {
		return lat, lng, false
	}
	if mode == "" {
		mode = service.TransportWalking
	}

	planCtx, cancel := context.WithTimeout(ctx, s.collabTimeout)
	defer cancel()

	route, err := s.routePlanner.PlanRoute(planCtx, input.Party1Lat, input.Party1Lng, input.Party2Lat, input.Party2Lng, mode)
	if err != nil || route == nil || route.TotalDistanceKm <= 0 || len(route.Legs) == 0 {
		if err != nil {
			s.logger.Debug("route planner unavailable, using geometric midpoint", slog.String("error", err.Error()))
		}

		return lat, lng, false
	}

	rLat, rLng, ok := routeMidpoint(route)
	if !ok {
		return lat, lng, false
	}

	return rLat, rLng, true
}

// routeMidpoint walks the route's cumulative distance and returns the point at
// which exactly half of the total has elapsed, interpolating within a leg.
func routeMidpoint(route *service.Route) (lat, lng float64, ok bool) {
	half := route.TotalDistanceKm / 2

	elapsed := 0.0
	for _, leg := range route.Legs {
		if leg.DistanceKm <= 0 {
			continue
		}
		if elapsed+leg.DistanceKm >= half {
			fraction := (half - elapsed) / leg.DistanceKm
			lat = leg.StartLat + (leg.EndLat-leg.StartLat)*fraction
			lng = leg.StartLng + (leg.EndLng-leg.StartLng)*fraction

			return lat, lng, true
		}
		elapsed += leg.DistanceKm
	}

	return 0, 0, false
}

// collectCandidates gathers curated locations within the search bound plus
// externally discovered places per preferred category, deduplicated with
// curated entries taking precedence.
func (s *meetupService) collectCandidates(ctx context.Context, midLat, midLng, radiusKm float64, preferred []entity.LocationCategory) ([]*entity.Location, error) {
	bound := geo.BoundAround(midLat, midLng, radiusKm)

	curated, err := s.locationRepo.FindActiveLocationsWithinBound(ctx, bound)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find locations within bound")
	}

	candidates := make([]*entity.Location, 0, len(curated))
	candidates = append(candidates, curated...)

	if s.placeDiscovery == nil || len(preferred) == 0 {
		return candidates, nil
	}

	categories := preferred
	if len(categories) > s.maxCategories {
		categories = categories[:s.maxCategories]
	}

	for _, category := range categories {
		discoverCtx, cancel := context.WithTimeout(ctx, s.collabTimeout)
		places, err := s.placeDiscovery.NearbyPlaces(discoverCtx, midLat, midLng, radiusKm, category)
		cancel()
		if err != nil {
			// Discovery is best-effort; curated candidates still serve.
			s.logger.Debug("place discovery failed for category",
				slog.String("category", string(category)),
				slog.String("error", err.Error()),
			)

			continue
		}

		for _, place := range places {
			if !geo.IsValidCoordinate(place.Latitude, place.Longitude) {
				continue
			}
			if s.duplicatesCurated(place, candidates) {
				continue
			}
			candidates = append(candidates, discoveredToLocation(place))
		}
	}

	return candidates, nil
}

// duplicatesCurated reports whether a discovered place merges with an already
// collected location: closer than the dedup radius and substring-similar names.
func (s *meetupService) duplicatesCurated(place service.DiscoveredPlace, collected []*entity.Location) bool {
	for _, loc := range collected {
		distM := geo.DistanceMeters(place.Latitude, place.Longitude, loc.Latitude, loc.Longitude)
		if distM < s.dedupRadiusM && namesSimilar(place.Name, loc.Name) {
			return true
		}
	}

	return false
}

// namesSimilar checks case- and space-insensitive containment either direction.
func namesSimilar(a, b string) bool {
	na := normalizeName(a)
	nb := normalizeName(b)
	if na == "" || nb == "" {
		return false
	}

	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func discoveredToLocation(place service.DiscoveredPlace) *entity.Location {
	rating := place.Rating
	if rating <= 0 {
		rating = discoveredDefaultRating
	}

	return &entity.Location{
		ID:          uuid.New(),
		Name:        place.Name,
		Category:    place.Category,
		Latitude:    place.Latitude,
		Longitude:   place.Longitude,
		City:        place.Address,
		Rating:      rating,
		SafetyScore: discoveredSafetyScore,
		Source:      entity.SourceDiscovered,
		IsActive:    true,
	}
}

// scoreCandidates applies the ranking formula and sorts descending. Ties break
// on name then ID so identical inputs always rank identically.
func (s *meetupService) scoreCandidates(
	candidates []*entity.Location,
	midLat, midLng float64,
	input *usecase.SuggestMeetupInput,
	preferred []entity.LocationCategory,
) []*usecase.MeetupCandidate {
	preferredSet := make(map[entity.LocationCategory]struct{}, len(preferred))
	for _, c := range preferred {
		preferredSet[c] = struct{}{}
	}

	scored := make([]*usecase.MeetupCandidate, 0, len(candidates))
	for _, loc := range candidates {
		distFromMid := geo.Distance(loc.Latitude, loc.Longitude, midLat, midLng)
		toParty1 := geo.Distance(loc.Latitude, loc.Longitude, input.Party1Lat, input.Party1Lng)
		toParty2 := geo.Distance(loc.Latitude, loc.Longitude, input.Party2Lat, input.Party2Lng)

		scored = append(scored, &usecase.MeetupCandidate{
			Location:          loc,
			Score:             scoreLocation(loc, distFromMid, toParty1, toParty2, preferredSet),
			DistanceFromMidKm: distFromMid,
			DistanceToParty1:  toParty1,
			DistanceToParty2:  toParty2,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Location.Name != scored[j].Location.Name {
			return scored[i].Location.Name < scored[j].Location.Name
		}

		return scored[i].Location.ID.String() < scored[j].Location.ID.String()
	})

	return scored
}

// scoreLocation implements the ranking formula. Higher is better.
func scoreLocation(loc *entity.Location, distFromMidKm, toParty1, toParty2 float64, preferred map[entity.LocationCategory]struct{}) float64 {
	score := typePriorityWeight[loc.Category] * 10

	if _, ok := preferred[loc.Category]; ok {
		score += 20
	}

	proximity := 5 - distFromMidKm
	if proximity < 0 {
		proximity = 0
	}
	score += proximity * 10

	score += balanceFactor(toParty1, toParty2) * 15
	score += (loc.Rating / 5) * 10
	score += (loc.SafetyScore / 5) * 10

	usage := float64(loc.UsageCount) / 10
	if usage > 5 {
		usage = 5
	}
	score += usage

	amenities := float64(len(loc.Amenities))
	if amenities > 5 {
		amenities = 5
	}
	score += amenities

	return score
}

// balanceFactor rewards candidates roughly equidistant from both parties.
func balanceFactor(toParty1, toParty2 float64) float64 {
	diff := toParty1 - toParty2
	if diff < 0 {
		diff = -diff
	}

	denom := toParty1
	if toParty2 > denom {
		denom = toParty2
	}
	if denom < 1 {
		denom = 1
	}

	return 1 - diff/denom
}
