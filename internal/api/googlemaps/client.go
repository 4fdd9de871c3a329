package googlemaps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

const (
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultPlacesURL  = "https://places.googleapis.com/v1/places:searchNearby"

	// Field mask for searchNearby; anything not listed comes back empty.
	placesFieldMask = "places.displayName,places.formattedAddress,places.location,places.types,places.rating,places.userRatingCount"
)

// ErrLocationNotFound marks the expected case where the geocoder has no
// match for the input. Callers turn it into a polite reply, never a 500.
var ErrLocationNotFound = errors.New("location not found")

var bareZipCode = regexp.MustCompile(`^\d{5}$`)

// Client is the outbound contract for the Google Maps surface: one
// geocode lookup and one nearby search per request, nothing else.
type Client interface {
	Geocode(ctx context.Context, location string) (*types.GeocodeResult, error)
	SearchNearby(ctx context.Context, center types.Coordinates, includedTypes []string, radiusMeters float64, maxResults int) ([]RawPlace, error)
}

var _ Client = (*ClientImpl)(nil)

// ClientImpl talks to the Geocoding API and the Places API (New) over
// plain HTTP. The http.Client and base URLs are injectable for tests.
type ClientImpl struct {
	apiKey     string
	httpClient *http.Client
	geocodeURL string
	placesURL  string
	logger     *slog.Logger
}

func NewClient(apiKey string, logger *slog.Logger) *ClientImpl {
	return &ClientImpl{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		geocodeURL: defaultGeocodeURL,
		placesURL:  defaultPlacesURL,
		logger:     logger,
	}
}

// NewClientWithBaseURLs is used by tests to point the client at stub servers.
func NewClientWithBaseURLs(apiKey string, httpClient *http.Client, geocodeURL, placesURL string, logger *slog.Logger) *ClientImpl {
	return &ClientImpl{
		apiKey:     apiKey,
		httpClient: httpClient,
		geocodeURL: geocodeURL,
		placesURL:  placesURL,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location types.LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves free text to coordinates plus a canonical address.
// Bare 5-digit ZIP codes get a country qualifier appended; the
// Geocoding API is noticeably more accurate with it.
func (c *ClientImpl) Geocode(ctx context.Context, location string) (*types.GeocodeResult, error) {
	query := location
	if bareZipCode.MatchString(location) {
		query = location + ", USA"
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling geocoding API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding API status %d: %s", resp.StatusCode, string(body))
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding geocode response: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		c.logger.DebugContext(ctx, "geocoding returned no match",
			slog.String("query", query), slog.String("status", decoded.Status))
		return nil, ErrLocationNotFound
	}

	first := decoded.Results[0]
	return &types.GeocodeResult{
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		FormattedAddress: first.FormattedAddress,
	}, nil
}

// RawPlace is a place record as the Places API returns it, before any
// categorization or defaulting. Optional fields may be empty or nil.
type RawPlace struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string             `json:"formattedAddress"`
	Types            []string           `json:"types"`
	Location         *types.Coordinates `json:"location"`
	Rating           float64            `json:"rating"`
	UserRatingCount  int                `json:"userRatingCount"`
}

type searchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center types.Coordinates `json:"center"`
			Radius float64           `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchNearbyResponse struct {
	Places []RawPlace `json:"places"`
}

// SearchNearby issues a single searchNearby call with the whole
// category set; the API caps results at maxResults, so no further
// capping happens downstream.
func (c *ClientImpl) SearchNearby(ctx context.Context, center types.Coordinates, includedTypes []string, radiusMeters float64, maxResults int) ([]RawPlace, error) {
	payload := searchNearbyRequest{
		IncludedTypes:  includedTypes,
		MaxResultCount: maxResults,
	}
	payload.LocationRestriction.Circle.Center = center
	payload.LocationRestriction.Circle.Radius = radiusMeters

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling searchNearby payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.placesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building searchNearby request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", placesFieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling places API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API status %d: %s", resp.StatusCode, string(respBody))
	}

	var decoded searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", err)
	}

	c.logger.DebugContext(ctx, "nearby search completed",
		slog.Int("places", len(decoded.Places)),
		slog.Float64("lat", center.Latitude),
		slog.Float64("lng", center.Longitude))
	return decoded.Places, nil
}
