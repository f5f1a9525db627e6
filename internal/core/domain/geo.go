package domain

import "math"

const earthRadiusKm = 6371.0

// Location is a WGS84 point. Longitude always comes first on the wire and in
// storage, matching GeoJSON.
type Location struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Validate checks coordinate ranges. NaN fails both comparisons and is
// rejected with the range error.
func (l Location) Validate() error {
	if !(l.Longitude >= -180 && l.Longitude <= 180) {
		return Invalid("longitude must be between -180 and 180")
	}
	if !(l.Latitude >= -90 && l.Latitude <= 90) {
		return Invalid("latitude must be between -90 and 90")
	}
	return nil
}

// DistanceKm returns the great-circle distance between two points.
func (l Location) DistanceKm(o Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := o.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (o.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}

// GeoPoint is the GeoJSON form used for 2dsphere indexes.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

func (l Location) GeoPoint() GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{l.Longitude, l.Latitude}}
}

// Location converts back; ok is false for malformed points.
func (p GeoPoint) Location() (Location, bool) {
	if len(p.Coordinates) != 2 {
		return Location{}, false
	}
	return Location{Longitude: p.Coordinates[0], Latitude: p.Coordinates[1]}, true
}
