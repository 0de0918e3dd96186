package valueobjects

import (
	"fmt"
	"math"
)

// Location is a WGS84 point.
type Location struct {
	lat float64
	lng float64
}

func NewLocation(lat, lng float64) (Location, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("latitude must be between -90 and 90, got %v", lat)
	}
	if math.IsNaN(lng) || lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("longitude must be between -180 and 180, got %v", lng)
	}
	return Location{lat: lat, lng: lng}, nil
}

func (l Location) Latitude() float64 {
	return l.lat
}

func (l Location) Longitude() float64 {
	return l.lng
}

// Within reports whether l lies inside the box. Boxes crossing the
// antimeridian are not supported.
func (l Location) Within(minLat, maxLat, minLng, maxLng float64) bool {
	return l.lat >= minLat && l.lat <= maxLat && l.lng >= minLng && l.lng <= maxLng
}
