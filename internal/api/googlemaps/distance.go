package googlemaps

import "math"

// earthRadiusMiles is the mean Earth radius used by the haversine formula.
const earthRadiusMiles = 3958.8

// DistanceMiles returns the great-circle distance between two points in
// miles. Symmetric, and zero for identical points.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1*(math.Pi/180))*math.Cos(lat2*(math.Pi/180))*math.Pow(math.Sin(dLon/2), 2)
	return 2 * earthRadiusMiles * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
