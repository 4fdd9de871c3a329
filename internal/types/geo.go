package types

// Coordinates is a WGS 84 point in the shape the Places API (New) uses.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LatLng is the legacy Geocoding API coordinate shape. The properties
// endpoint echoes it back to the frontend unchanged.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeResult is the canonical form of a successfully geocoded
// location. One per resolved location; never cached across requests.
type GeocodeResult struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
}

// Center returns the result as Places API coordinates.
func (g GeocodeResult) Center() Coordinates {
	return Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}
}

// LatLng returns the result in the response wire shape.
func (g GeocodeResult) LatLng() LatLng {
	return LatLng{Lat: g.Latitude, Lng: g.Longitude}
}
