package session

import (
	"meet-halfway/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Map returns the route, both origins, the midpoint and every venue with a
// location as a GeoJSON feature collection. Before the first calculation
// the collection is empty.
func (s *Session) Map() *geojson.FeatureCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	fc := geojson.NewFeatureCollection()
	m := s.midpoint
	if m == nil {
		return fc
	}

	if m.Route != nil {
		var ls orb.LineString
		for _, p := range m.Route.Path() {
			ls = append(ls, p.Point())
		}
		if len(ls) > 0 {
			f := geojson.NewFeature(ls)
			f.Properties["kind"] = "route"
			f.Properties["mode"] = string(m.Mode)
			if len(m.Route.Legs) > 0 {
				f.Properties["distance"] = m.Route.Legs[0].DistanceText
				f.Properties["duration"] = m.Route.Legs[0].DurationText
			}
			fc.Append(f)
		}
	}

	fc.Append(pointFeature(m.OriginA, "origin_a"))
	fc.Append(pointFeature(m.OriginB, "origin_b"))
	mid := pointFeature(m.Point, "midpoint")
	mid.Properties["mode"] = string(m.Mode)
	fc.Append(mid)

	for _, v := range s.venues {
		if v.Location == nil {
			continue
		}
		f := pointFeature(*v.Location, "venue")
		f.ID = v.PlaceID
		f.Properties["place_id"] = v.PlaceID
		f.Properties["name"] = v.Name
		f.Properties["address"] = v.Address
		if v.Rating != nil {
			f.Properties["rating"] = *v.Rating
		}
		fc.Append(f)
	}
	return fc
}

func pointFeature(p models.GeoPoint, kind string) *geojson.Feature {
	f := geojson.NewFeature(p.Point())
	f.Properties["kind"] = kind
	return f
}
