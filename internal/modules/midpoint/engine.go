// Package midpoint finds the point along a driving route that splits the
// trip evenly between the two parties, by time or by distance.
package midpoint

import (
	"math"

	"meet-halfway/internal/models"
)

// ComputeMidpoint walks the first leg of route and returns the polyline
// point where the accumulated step cost crosses half of the leg total.
//
// Steps with a missing or non-positive cost are skipped. Steps without a
// polyline still count toward the running cost but are never chosen. When
// no step crosses the half-way mark the leg's last polyline point is
// returned.
func ComputeMidpoint(route *models.Route, mode models.OptimizationMode) (models.GeoPoint, error) {
	if route == nil || len(route.Legs) == 0 {
		return models.GeoPoint{}, models.ErrInvalidRoute
	}
	leg := route.Legs[0]
	last, ok := lastPoint(leg.Steps)
	if !ok {
		return models.GeoPoint{}, models.ErrInvalidRoute
	}

	total, ok := leg.Total(mode)
	if !ok || total <= 0 {
		total = sumStepCosts(leg.Steps, mode)
	}
	target := total / 2

	running := 0.0
	for _, step := range leg.Steps {
		cost, ok := step.Cost(mode)
		if !ok || cost <= 0 {
			continue
		}
		if len(step.Path) > 0 && running+cost >= target {
			return pointAt(step.Path, (target-running)/cost), nil
		}
		running += cost
	}

	return last, nil
}

// pointAt samples path at the given fraction of its length.
func pointAt(path []models.GeoPoint, ratio float64) models.GeoPoint {
	ratio = math.Max(0, math.Min(1, ratio))
	idx := int(math.Floor(ratio * float64(len(path)-1)))
	if idx >= len(path) {
		idx = len(path) - 1
	}
	return path[idx]
}

func sumStepCosts(steps []models.RouteStep, mode models.OptimizationMode) float64 {
	sum := 0.0
	for _, step := range steps {
		if cost, ok := step.Cost(mode); ok && cost > 0 {
			sum += cost
		}
	}
	return sum
}

// lastPoint is the final polyline point of the leg, skipping trailing
// steps that carry no path.
func lastPoint(steps []models.RouteStep) (models.GeoPoint, bool) {
	for i := len(steps) - 1; i >= 0; i-- {
		if path := steps[i].Path; len(path) > 0 {
			return path[len(path)-1], true
		}
	}
	return models.GeoPoint{}, false
}
