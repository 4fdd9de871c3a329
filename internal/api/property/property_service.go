package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-estate-assistant/app/observability/metrics"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/googlemaps"
	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

// Synthesis enumerations. Listings are simulated from place data; this
// is explicitly not a live inventory.
var propertyTypes = []string{"Apartment", "Villa", "Townhouse", "Condo"}

var listingTypes = []string{types.ListingForRent, types.ListingForSale, types.ListingForLease}

var _ Service = (*ServiceImpl)(nil)

// Service synthesizes property listings around a geocoded location.
type Service interface {
	Search(ctx context.Context, locationText string, filter types.ListingFilter) (*types.PropertySearchResponse, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	maps         googlemaps.Client
	radiusMeters float64
	maxResults   int

	// rng is seedable so tests can pin the synthesized attributes.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewServiceImpl(maps googlemaps.Client, radiusMeters float64, maxResults int, rng *rand.Rand, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		maps:         maps,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
		rng:          rng,
	}
}

// Search geocodes the location, pulls real-estate-adjacent places
// around it and synthesizes one candidate listing per place, dropping
// candidates the filter rejects. A location the geocoder cannot
// resolve is an expected miss and comes back as an error-shaped
// response, not a Go error.
func (s *ServiceImpl) Search(ctx context.Context, locationText string, filter types.ListingFilter) (*types.PropertySearchResponse, error) {
	ctx, span := otel.Tracer("PropertyService").Start(ctx, "Search")
	defer span.End()

	geo, err := s.maps.Geocode(ctx, locationText)
	if errors.Is(err, googlemaps.ErrLocationNotFound) {
		metrics.Get().GeocodeMissesTotal.Add(ctx, 1)
		span.SetStatus(codes.Ok, "Location not found")
		return &types.PropertySearchResponse{
			Error:      "Location not found",
			Properties: []types.PropertyListing{},
		}, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("geocoding %q: %w", locationText, err)
	}

	raw, err := s.maps.SearchNearby(ctx, geo.Center(), googlemaps.PropertyCategories, s.radiusMeters, s.maxResults)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("searching near %q: %w", geo.FormattedAddress, err)
	}

	isDubai := strings.Contains(strings.ToLower(geo.FormattedAddress), "dubai")
	properties := s.synthesize(raw, *geo, isDubai, filter)

	span.SetAttributes(
		attribute.Int("property.candidates", len(raw)),
		attribute.Int("property.listings", len(properties)),
		attribute.Bool("property.dubai", isDubai),
	)
	span.SetStatus(codes.Ok, "Listings synthesized")

	coords := geo.LatLng()
	return &types.PropertySearchResponse{
		Message:     searchMessage(len(properties), geo.FormattedAddress, isDubai),
		Address:     geo.FormattedAddress,
		Coordinates: &coords,
		Properties:  properties,
	}, nil
}

// synthesize builds one candidate per place in input order. Candidates
// whose listing type misses a non-all filter are dropped, not
// replaced, so the result may be smaller than the place count.
func (s *ServiceImpl) synthesize(raw []googlemaps.RawPlace, geo types.GeocodeResult, isDubai bool, filter types.ListingFilter) []types.PropertyListing {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := filter.Wanted()
	properties := make([]types.PropertyListing, 0, len(raw))
	for _, p := range raw {
		var price int
		currency := "USD"
		if isDubai {
			// Simulation rule: Dubai draws in AED, everywhere else in USD.
			price = s.rng.Intn(1_000_000) + 500_000
			currency = "AED"
		} else {
			price = s.rng.Intn(5_000) + 1_000
		}
		beds := s.rng.Intn(4) + 1
		baths := s.rng.Intn(3) + 1
		sqft := s.rng.Intn(2_000) + 600
		propertyType := propertyTypes[s.rng.Intn(len(propertyTypes))]
		listingType := listingTypes[s.rng.Intn(len(listingTypes))]

		if wanted != "" && listingType != wanted {
			continue
		}

		id := p.ID
		if id == "" {
			id = "prop-" + uuid.NewString()[:8]
		}
		name := p.DisplayName.Text
		if name == "" {
			name = fmt.Sprintf("%d Bed %s", beds, propertyType)
		}
		address := p.FormattedAddress
		if address == "" {
			address = "Address not available"
		}
		location := geo.Center()
		if p.Location != nil {
			location = *p.Location
		}

		properties = append(properties, types.PropertyListing{
			ID:          id,
			Name:        name,
			Address:     address,
			Type:        propertyType,
			ListingType: listingType,
			Price:       price,
			Currency:    currency,
			Beds:        beds,
			Baths:       baths,
			Sqft:        sqft,
			Location:    location,
			Rating:      p.Rating,
			Distance:    googlemaps.DistanceLabel(geo.Center(), p.Location),
		})
	}
	return properties
}

func searchMessage(count int, address string, isDubai bool) string {
	msg := fmt.Sprintf("I found %d properties in %s.", count, address)
	switch {
	case count == 0:
		msg += " I couldn't find any properties matching your criteria. Try expanding your search area or changing filters."
	case isDubai:
		msg += " Dubai's real estate market is quite active with options ranging from luxury apartments to waterfront villas."
	default:
		msg += " Here are some properties that might interest you."
	}
	return msg
}
