// Package maps is the boundary to the mapping platform. Everything past
// this package sees only models types.
package maps

import (
	"context"
	"errors"
	"fmt"

	"meet-halfway/internal/models"
)

// Directions computes a driving route between two points.
type Directions interface {
	Route(ctx context.Context, origin, destination models.GeoPoint) (*models.Route, error)
}

// NearbySearch lists venues of a category around a point, in the
// provider's ranking order.
type NearbySearch interface {
	Search(ctx context.Context, center models.GeoPoint, radiusMeters int, category models.Category) ([]models.Venue, error)
}

// DistanceMatrix returns driving costs for every origin/destination pair.
type DistanceMatrix interface {
	Matrix(ctx context.Context, origins, destinations []models.GeoPoint) (models.CostGrid, error)
}

// Geocoder covers autocomplete, place resolution and reverse geocoding.
type Geocoder interface {
	Suggest(ctx context.Context, text string) ([]models.Suggestion, error)
	Resolve(ctx context.Context, placeID string, fields []string) (*models.Place, error)
	ReverseGeocode(ctx context.Context, point models.GeoPoint) (*models.Place, error)
}

// PlaceDetails fetches the rich record for the details view.
type PlaceDetails interface {
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// Provider is implemented by a full mapping backend such as GoogleClient.
type Provider interface {
	Directions
	NearbySearch
	DistanceMatrix
	Geocoder
	PlaceDetails
}

// Platform is the injected handle to the mapping collaborators. A Platform
// built without a provider is not ready and rejects every call locally.
type Platform struct {
	provider Provider
}

// NewPlatform wraps p. A nil provider yields a platform that is never ready.
func NewPlatform(p Provider) *Platform {
	return &Platform{provider: p}
}

// Ready returns models.ErrPlatformUnavailable until a provider is present.
func (p *Platform) Ready() error {
	if p == nil || p.provider == nil {
		return models.ErrPlatformUnavailable
	}
	return nil
}

// Route implements Directions.
func (p *Platform) Route(ctx context.Context, origin, destination models.GeoPoint) (*models.Route, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	route, err := p.provider.Route(ctx, origin, destination)
	return route, classify(ctx, "maps.Route", err)
}

// Search implements NearbySearch.
func (p *Platform) Search(ctx context.Context, center models.GeoPoint, radiusMeters int, category models.Category) ([]models.Venue, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	venues, err := p.provider.Search(ctx, center, radiusMeters, category)
	return venues, classify(ctx, "maps.Search", err)
}

// Matrix implements DistanceMatrix.
func (p *Platform) Matrix(ctx context.Context, origins, destinations []models.GeoPoint) (models.CostGrid, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	grid, err := p.provider.Matrix(ctx, origins, destinations)
	return grid, classify(ctx, "maps.Matrix", err)
}

// Suggest implements Geocoder.
func (p *Platform) Suggest(ctx context.Context, text string) ([]models.Suggestion, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	out, err := p.provider.Suggest(ctx, text)
	return out, classify(ctx, "maps.Suggest", err)
}

// Resolve implements Geocoder.
func (p *Platform) Resolve(ctx context.Context, placeID string, fields []string) (*models.Place, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	place, err := p.provider.Resolve(ctx, placeID, fields)
	return place, classify(ctx, "maps.Resolve", err)
}

// ReverseGeocode implements Geocoder.
func (p *Platform) ReverseGeocode(ctx context.Context, point models.GeoPoint) (*models.Place, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	place, err := p.provider.ReverseGeocode(ctx, point)
	return place, classify(ctx, "maps.ReverseGeocode", err)
}

// Details implements PlaceDetails.
func (p *Platform) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	if err := p.Ready(); err != nil {
		return nil, err
	}
	details, err := p.provider.Details(ctx, placeID)
	return details, classify(ctx, "maps.Details", err)
}

// classify wraps provider errors and turns deadline expiry into ErrTimeout.
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, models.ErrTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}
