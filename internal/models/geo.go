package models

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GeoPoint is a WGS84 coordinate. It is the only coordinate type used past
// the mapping-platform boundary.
type GeoPoint struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Equal reports whether both coordinates are identical.
func (p GeoPoint) Equal(o GeoPoint) bool {
	return p.Lat == o.Lat && p.Lng == o.Lng
}

// String renders the point as "lat,lng", the form the mapping APIs accept.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// Point converts to an orb point (x=lng, y=lat).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// DistanceMeters returns the great-circle distance to o.
func (p GeoPoint) DistanceMeters(o GeoPoint) float64 {
	return geo.Distance(p.Point(), o.Point())
}
