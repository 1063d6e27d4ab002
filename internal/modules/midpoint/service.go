package midpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meet-halfway/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// resolveFields are the place fields needed to turn an autocomplete pick
// into coordinates.
var resolveFields = []string{"geometry", "name", "formatted_address", "place_id"}

// Platform is the part of the mapping platform the midpoint service needs.
type Platform interface {
	Route(ctx context.Context, origin, destination models.GeoPoint) (*models.Route, error)
	Resolve(ctx context.Context, placeID string, fields []string) (*models.Place, error)
}

// ServiceInterface defines the contract for the midpoint service.
type ServiceInterface interface {
	ResolveEndpoint(ctx context.Context, e models.Endpoint) (models.GeoPoint, error)
	Calculate(ctx context.Context, a, b models.Endpoint, mode models.OptimizationMode) (*models.Midpoint, error)
}

// Service resolves both endpoints, fetches the driving route between them
// and computes the midpoint.
type Service struct {
	platform Platform
	logger   echo.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewService creates a new midpoint service. Every platform call is bounded
// by timeout.
func NewService(platform Platform, logger echo.Logger, timeout time.Duration) *Service {
	return &Service{
		platform: platform,
		logger:   logger,
		timeout:  timeout,
		now:      time.Now,
	}
}

// ResolveEndpoint turns an endpoint into coordinates. Explicit coordinates
// win; otherwise the place is looked up by id.
func (s *Service) ResolveEndpoint(ctx context.Context, e models.Endpoint) (models.GeoPoint, error) {
	if e.Location != nil {
		return *e.Location, nil
	}
	if e.Source == models.SourceCurrentLocation {
		return models.GeoPoint{}, models.ErrGeolocationUnavailable
	}
	if e.PlaceID == "" {
		return models.GeoPoint{}, models.ErrInvalidInput
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	place, err := s.platform.Resolve(ctx, e.PlaceID, resolveFields)
	if err != nil {
		return models.GeoPoint{}, fmt.Errorf("service.ResolveEndpoint: %w", err)
	}
	if place == nil || place.Location == nil {
		return models.GeoPoint{}, models.ErrInvalidInput
	}
	return *place.Location, nil
}

// Calculate computes the fair midpoint between a and b.
func (s *Service) Calculate(ctx context.Context, a, b models.Endpoint, mode models.OptimizationMode) (*models.Midpoint, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("service.Calculate: unknown mode %q: %w", mode, models.ErrInvalidInput)
	}

	// 1. Both endpoints must have coordinates before any route is requested.
	originA, err := s.ResolveEndpoint(ctx, a)
	if err != nil {
		return nil, err
	}
	originB, err := s.ResolveEndpoint(ctx, b)
	if err != nil {
		return nil, err
	}

	// 2. Driving route between the parties.
	routeCtx, cancel := s.withTimeout(ctx)
	defer cancel()
	route, err := s.platform.Route(routeCtx, originA, originB)
	if err != nil {
		s.logger.Errorf("Directions request failed: %v", err)
		if errors.Is(err, models.ErrTimeout) || errors.Is(err, models.ErrPlatformUnavailable) {
			return nil, fmt.Errorf("service.Calculate: %w", err)
		}
		return nil, fmt.Errorf("service.Calculate: %v: %w", err, models.ErrInvalidRoute)
	}

	// 3. Walk the route.
	point, err := ComputeMidpoint(route, mode)
	if err != nil {
		s.logger.Warnf("Route from %s to %s has no usable steps", originA, originB)
		return nil, fmt.Errorf("service.Calculate: %w", err)
	}

	return &models.Midpoint{
		ID:         uuid.New().String(),
		Point:      point,
		Mode:       mode,
		OriginA:    originA,
		OriginB:    originB,
		Route:      route,
		ComputedAt: s.now(),
	}, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
