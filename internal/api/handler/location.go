package handler

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
)

// locationRequest accepts the coordinate shapes clients send:
// {"longitude","latitude"}, the short {"lng"/"lon","lat"} aliases, or a
// GeoJSON point {"type":"Point","coordinates":[lng,lat]}.
type locationRequest struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

func (l *locationRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Longitude   *float64  `json:"longitude"`
		Latitude    *float64  `json:"latitude"`
		Lng         *float64  `json:"lng"`
		Lon         *float64  `json:"lon"`
		Lat         *float64  `json:"lat"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	l.Longitude = firstSet(raw.Longitude, raw.Lng, raw.Lon)
	l.Latitude = firstSet(raw.Latitude, raw.Lat)
	if len(raw.Coordinates) == 2 && l.Longitude == nil && l.Latitude == nil {
		l.Longitude = &raw.Coordinates[0]
		l.Latitude = &raw.Coordinates[1]
	}
	return nil
}

// toDomain returns nil when either coordinate is missing.
func (l *locationRequest) toDomain() *domain.Location {
	if l == nil || l.Longitude == nil || l.Latitude == nil {
		return nil
	}
	return &domain.Location{Longitude: *l.Longitude, Latitude: *l.Latitude}
}

// parseFormLocation reads coordinates from multipart fields.
func parseFormLocation(lng, lat string) (*domain.Location, error) {
	lng, lat = strings.TrimSpace(lng), strings.TrimSpace(lat)
	if lng == "" || lat == "" {
		return nil, nil
	}
	lon, err := strconv.ParseFloat(lng, 64)
	if err != nil || !finite(lon) {
		return nil, domain.Invalid("longitude must be a number")
	}
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || !finite(la) {
		return nil, domain.Invalid("latitude must be a number")
	}
	return &domain.Location{Longitude: lon, Latitude: la}, nil
}

// finite rejects the "NaN" and "Inf" spellings ParseFloat accepts.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func firstSet(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
