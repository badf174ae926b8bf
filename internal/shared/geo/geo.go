package geo

import (
	"errors"
	"math"
)

const earthRadiusKm = 6371.0

var ErrInvalidCoords = errors.New("coordinates must be finite, lat within [-90,90] and lng within [-180,180]")

// Coords is a latitude/longitude pair in degrees.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c Coords) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return ErrInvalidCoords
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180 {
		return ErrInvalidCoords
	}
	return nil
}

// HaversineKm returns the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Distance is HaversineKm for two Coords.
func Distance(a, b Coords) float64 {
	return HaversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
