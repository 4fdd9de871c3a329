package googlemaps

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

// Search category whitelists. Order matters: the first raw type found
// in the whitelist becomes the place's primary category.
var (
	ChatCategories = []string{
		"restaurant", "school", "university", "transit_station",
		"airport", "park", "shopping_mall", "hospital",
	}
	PropertyCategories = []string{
		"real_estate_agency", "lodging", "apartment", "condominium",
	}
)

// Defaults for optional fields the Places API may omit.
const (
	defaultPlaceName    = "Unnamed Place"
	defaultPlaceAddress = "No address available"
	unknownDistance     = "unknown"
)

// PrimaryCategory picks the display category for a place: the first raw
// type present in the whitelist, else the first raw type, else "place".
// Underscores become spaces for display.
func PrimaryCategory(rawTypes, whitelist []string) string {
	if len(rawTypes) == 0 {
		return "place"
	}
	picked := rawTypes[0]
	for _, t := range rawTypes {
		found := false
		for _, w := range whitelist {
			if t == w {
				found = true
				break
			}
		}
		if found {
			picked = t
			break
		}
	}
	return strings.ReplaceAll(picked, "_", " ")
}

// DistanceLabel formats the distance from origin to loc for display, or
// "unknown" when the place record carried no coordinates.
func DistanceLabel(origin types.Coordinates, loc *types.Coordinates) string {
	if loc == nil {
		return unknownDistance
	}
	d := DistanceMiles(origin.Latitude, origin.Longitude, loc.Latitude, loc.Longitude)
	return fmt.Sprintf("%.1f", d)
}

// Aggregate turns raw place records into display places: defaults for
// missing optional fields, a primary category per the whitelist, and
// the distance from the search origin. Input order is preserved and no
// per-category cap is applied; the overall cap is the search's
// maxResults.
func Aggregate(raw []RawPlace, origin types.Coordinates, whitelist []string) []types.Place {
	places := make([]types.Place, 0, len(raw))
	for _, p := range raw {
		name := p.DisplayName.Text
		if name == "" {
			name = defaultPlaceName
		}
		address := p.FormattedAddress
		if address == "" {
			address = defaultPlaceAddress
		}
		location := origin
		if p.Location != nil {
			location = *p.Location
		}

		places = append(places, types.Place{
			ID:               p.ID,
			Name:             name,
			Address:          address,
			Category:         PrimaryCategory(p.Types, whitelist),
			Location:         location,
			Rating:           p.Rating,
			UserRatingsTotal: p.UserRatingCount,
			Distance:         DistanceLabel(origin, p.Location),
		})
	}
	return places
}
