package types

// Place is a nearby point of interest after aggregation: a single
// display category has been chosen from the raw type tags and the
// distance from the search origin has been computed.
type Place struct {
	ID      string `json:"place_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	// Category is the primary display category, raw tag underscores
	// replaced with spaces ("transit station", not "transit_station").
	Category         string      `json:"type"`
	Location         Coordinates `json:"location"`
	Rating           float64     `json:"rating"`
	UserRatingsTotal int         `json:"user_ratings_total"`
	// Distance is miles from the search origin rounded to one decimal,
	// or "unknown" when the upstream record had no coordinates.
	Distance string `json:"distance"`
}
