package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-estate-assistant/app/observability/metrics"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/googlemaps"
	"github.com/FACorreiaa/go-estate-assistant/internal/api/location"
	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

const (
	noLocationReply = "I couldn't identify a specific location. Could you provide a city, zip code, or neighborhood?"
)

func notFoundReply(loc string) string {
	return fmt.Sprintf("I had trouble finding information about %q. Please check the spelling or try another location.", loc)
}

var _ Service = (*ServiceImpl)(nil)

// Service answers a chat message with a nearby-places summary.
type Service interface {
	ProcessMessage(ctx context.Context, message string) (*types.ChatResponse, error)
}

type ServiceImpl struct {
	logger       *slog.Logger
	resolver     location.Resolver
	maps         googlemaps.Client
	radiusMeters float64
	maxResults   int
}

func NewServiceImpl(resolver location.Resolver, maps googlemaps.Client, radiusMeters float64, maxResults int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:       logger,
		resolver:     resolver,
		maps:         maps,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
	}
}

// ProcessMessage runs the chat pipeline: resolve a location from the
// message, geocode it, search nearby, aggregate, compose a reply. The
// two expected misses (no location in the message, geocoder has no
// match) come back as polite replies, not errors; only upstream
// failures propagate.
func (s *ServiceImpl) ProcessMessage(ctx context.Context, message string) (*types.ChatResponse, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "ProcessMessage")
	defer span.End()

	loc, err := s.resolver.Resolve(ctx, message)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolving location: %w", err)
	}
	if loc == location.NoLocation {
		span.SetStatus(codes.Ok, "No location in message")
		return &types.ChatResponse{Reply: noLocationReply, Places: []types.Place{}}, nil
	}
	s.logger.InfoContext(ctx, "extracted location", slog.String("location", loc))
	span.SetAttributes(attribute.String("chat.location", loc))

	geo, err := s.maps.Geocode(ctx, loc)
	if errors.Is(err, googlemaps.ErrLocationNotFound) {
		metrics.Get().GeocodeMissesTotal.Add(ctx, 1)
		span.SetStatus(codes.Ok, "Location not found")
		return &types.ChatResponse{Reply: notFoundReply(loc), Places: []types.Place{}}, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("geocoding %q: %w", loc, err)
	}

	raw, err := s.maps.SearchNearby(ctx, geo.Center(), googlemaps.ChatCategories, s.radiusMeters, s.maxResults)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("searching near %q: %w", geo.FormattedAddress, err)
	}

	places := googlemaps.Aggregate(raw, geo.Center(), googlemaps.ChatCategories)
	span.SetAttributes(attribute.Int("chat.places", len(places)))
	span.SetStatus(codes.Ok, "Reply composed")

	return &types.ChatResponse{
		Reply:  composeReply(geo.FormattedAddress, places),
		Places: places,
	}, nil
}
