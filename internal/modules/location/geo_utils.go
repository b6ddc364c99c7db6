// README: Great-circle distance between gazetteer points, used when no router answers.
package location

import (
	"math"

	"taxifare/internal/types"
)

const earthRadiusKm = 6371.0

// greatCircleKm is the unrounded haversine distance between a and b.
func greatCircleKm(a, b types.Point) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLng := radians(b.Lng - a.Lng)

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// HaversineKm is the great-circle distance between two points, rounded to 0.1 km.
func HaversineKm(a, b types.Point) float64 {
	return roundTenth(greatCircleKm(a, b))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
