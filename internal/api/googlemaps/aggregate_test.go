package googlemaps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

func TestPrimaryCategory(t *testing.T) {
	t.Run("first whitelisted type wins", func(t *testing.T) {
		got := PrimaryCategory([]string{"point_of_interest", "school", "restaurant"}, ChatCategories)
		assert.Equal(t, "school", got)
	})

	t.Run("falls back to first raw type", func(t *testing.T) {
		got := PrimaryCategory([]string{"point_of_interest", "establishment"}, ChatCategories)
		assert.Equal(t, "point of interest", got)
	})

	t.Run("no types at all", func(t *testing.T) {
		assert.Equal(t, "place", PrimaryCategory(nil, ChatCategories))
	})

	t.Run("underscores become spaces", func(t *testing.T) {
		got := PrimaryCategory([]string{"transit_station"}, ChatCategories)
		assert.Equal(t, "transit station", got)
	})
}

func TestDistanceLabel(t *testing.T) {
	origin := types.Coordinates{Latitude: 30.2672, Longitude: -97.7431}

	t.Run("missing location is unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", DistanceLabel(origin, nil))
	})

	t.Run("one decimal place", func(t *testing.T) {
		got := DistanceLabel(origin, &types.Coordinates{Latitude: 30.2669, Longitude: -97.7729})
		assert.Regexp(t, `^\d+\.\d$`, got)
	})

	t.Run("same point", func(t *testing.T) {
		got := DistanceLabel(origin, &origin)
		assert.Equal(t, "0.0", got)
	})
}

func TestAggregate(t *testing.T) {
	origin := types.Coordinates{Latitude: 30.2672, Longitude: -97.7431}

	full := RawPlace{
		ID:               "place-1",
		FormattedAddress: "100 Congress Ave, Austin, TX",
		Types:            []string{"point_of_interest", "restaurant"},
		Location:         &types.Coordinates{Latitude: 30.2650, Longitude: -97.7450},
		Rating:           4.5,
		UserRatingCount:  120,
	}
	full.DisplayName.Text = "Taco Joint"

	bare := RawPlace{ID: "place-2"}

	t.Run("maps fields and applies whitelist", func(t *testing.T) {
		places := Aggregate([]RawPlace{full}, origin, ChatCategories)
		require.Len(t, places, 1)

		p := places[0]
		assert.Equal(t, "place-1", p.ID)
		assert.Equal(t, "Taco Joint", p.Name)
		assert.Equal(t, "100 Congress Ave, Austin, TX", p.Address)
		assert.Equal(t, "restaurant", p.Category)
		assert.Equal(t, 4.5, p.Rating)
		assert.Equal(t, 120, p.UserRatingsTotal)
		assert.Regexp(t, `^\d+\.\d$`, p.Distance)
	})

	t.Run("defaults for missing optional fields", func(t *testing.T) {
		places := Aggregate([]RawPlace{bare}, origin, ChatCategories)
		require.Len(t, places, 1)

		p := places[0]
		assert.Equal(t, "Unnamed Place", p.Name)
		assert.Equal(t, "No address available", p.Address)
		assert.Equal(t, "place", p.Category)
		assert.Equal(t, origin, p.Location)
		assert.Equal(t, "unknown", p.Distance)
	})

	t.Run("preserves input order", func(t *testing.T) {
		places := Aggregate([]RawPlace{bare, full}, origin, ChatCategories)
		require.Len(t, places, 2)
		assert.Equal(t, "place-2", places[0].ID)
		assert.Equal(t, "place-1", places[1].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Aggregate(nil, origin, ChatCategories))
	})
}
