package models

import "time"

// OptimizationMode selects which step cost drives the midpoint search.
type OptimizationMode string

const (
	ModeTime     OptimizationMode = "time"
	ModeDistance OptimizationMode = "distance"
)

// Valid reports whether m is one of the supported modes.
func (m OptimizationMode) Valid() bool {
	return m == ModeTime || m == ModeDistance
}

// RouteStep is one segment of a leg. Costs are optional because the
// directions provider may omit them.
type RouteStep struct {
	DurationSeconds *float64   `json:"duration_seconds,omitempty"`
	DistanceMeters  *float64   `json:"distance_meters,omitempty"`
	Instruction     string     `json:"instruction,omitempty"`
	Path            []GeoPoint `json:"path"`
}

// Cost returns the step cost for the given mode and whether it is known.
func (s RouteStep) Cost(mode OptimizationMode) (float64, bool) {
	return pick(mode, s.DurationSeconds, s.DistanceMeters)
}

// RouteLeg is an origin-to-destination segment of a route.
type RouteLeg struct {
	Steps           []RouteStep `json:"steps"`
	DurationSeconds *float64    `json:"duration_seconds,omitempty"`
	DistanceMeters  *float64    `json:"distance_meters,omitempty"`
	DurationText    string      `json:"duration_text,omitempty"`
	DistanceText    string      `json:"distance_text,omitempty"`
	StartAddress    string      `json:"start_address,omitempty"`
	EndAddress      string      `json:"end_address,omitempty"`
	Start           GeoPoint    `json:"start"`
	End             GeoPoint    `json:"end"`
}

// Total returns the aggregate leg cost for the given mode and whether it is known.
func (l RouteLeg) Total(mode OptimizationMode) (float64, bool) {
	return pick(mode, l.DurationSeconds, l.DistanceMeters)
}

// Route is the driving route between the two parties. Only Legs[0] is used.
type Route struct {
	Summary string     `json:"summary,omitempty"`
	Legs    []RouteLeg `json:"legs"`
}

// Path flattens every step polyline of every leg in order.
func (r *Route) Path() []GeoPoint {
	var out []GeoPoint
	for _, leg := range r.Legs {
		for _, step := range leg.Steps {
			out = append(out, step.Path...)
		}
	}
	return out
}

// Midpoint is the result of one calculation. It is never mutated after it
// is produced; a new calculation yields a new Midpoint.
type Midpoint struct {
	ID         string           `json:"id"`
	Point      GeoPoint         `json:"point"`
	Mode       OptimizationMode `json:"mode"`
	OriginA    GeoPoint         `json:"origin_a"`
	OriginB    GeoPoint         `json:"origin_b"`
	Route      *Route           `json:"route"`
	ComputedAt time.Time        `json:"computed_at"`
}

func pick(mode OptimizationMode, duration, distance *float64) (float64, bool) {
	v := distance
	if mode == ModeTime {
		v = duration
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Float returns a pointer to v, for optional cost fields.
func Float(v float64) *float64 {
	return &v
}
