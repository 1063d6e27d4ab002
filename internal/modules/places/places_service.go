package places

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
)

// currentLocationFields are fetched after reverse geocoding so the device
// location behaves like a place picked from autocomplete.
var currentLocationFields = []string{"geometry", "name", "formatted_address", "place_id", "rating", "user_ratings_total", "vicinity"}

// resolveFields are fetched for an autocomplete pick.
var resolveFields = []string{"geometry", "name", "formatted_address", "place_id", "rating", "user_ratings_total"}

// Platform is the part of the mapping platform the places service needs.
type Platform interface {
	Suggest(ctx context.Context, text string) ([]models.Suggestion, error)
	Resolve(ctx context.Context, placeID string, fields []string) (*models.Place, error)
	ReverseGeocode(ctx context.Context, point models.GeoPoint) (*models.Place, error)
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// ServiceInterface defines the contract for the places service.
type ServiceInterface interface {
	Autocomplete(ctx context.Context, input string) ([]models.Suggestion, error)
	Resolve(ctx context.Context, placeID string) (*models.Place, error)
	CurrentLocation(ctx context.Context, point models.GeoPoint) (*models.CurrentPlace, error)
	Details(ctx context.Context, placeID string) (*models.PlaceDetails, error)
}

// Service implements address entry and place lookups.
type Service struct {
	platform Platform
	logger   echo.Logger
	timeout  time.Duration
	now      func() time.Time
}

// NewService creates a new places service.
func NewService(platform Platform, logger echo.Logger, timeout time.Duration) *Service {
	return &Service{platform: platform, logger: logger, timeout: timeout, now: time.Now}
}

// Autocomplete returns predictions for input. Blank input yields no
// predictions without calling the platform.
func (s *Service) Autocomplete(ctx context.Context, input string) ([]models.Suggestion, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []models.Suggestion{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out, err := s.platform.Suggest(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("service.Autocomplete: %w", err)
	}
	return out, nil
}

// Resolve looks up a picked suggestion. A place without geometry cannot be
// used as an endpoint and is reported as invalid input.
func (s *Service) Resolve(ctx context.Context, placeID string) (*models.Place, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	place, err := s.platform.Resolve(ctx, placeID, resolveFields)
	if err != nil {
		return nil, fmt.Errorf("service.Resolve: %w", err)
	}
	if place.Location == nil {
		return nil, fmt.Errorf("service.Resolve: %s: %w", placeID, models.ErrInvalidInput)
	}
	return place, nil
}

// CurrentLocation turns device coordinates into a place. Lookups degrade
// step by step: full place details, then the geocoded address, then the raw
// coordinates. It never fails once coordinates are known.
func (s *Service) CurrentLocation(ctx context.Context, point models.GeoPoint) (*models.CurrentPlace, error) {
	loc := point
	current := &models.CurrentPlace{
		Place: models.Place{
			PlaceID:          fmt.Sprintf("current_location_%d", s.now().UnixMilli()),
			Name:             "Current Location",
			FormattedAddress: fmt.Sprintf("%.6f, %.6f", point.Lat, point.Lng),
			Location:         &loc,
		},
		Label: fmt.Sprintf("Current Location (%.4f, %.4f)", point.Lat, point.Lng),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	geocoded, err := s.platform.ReverseGeocode(ctx, point)
	if err != nil || geocoded == nil {
		s.logger.Warnf("Reverse geocoding %s failed: %v", point, err)
		return current, nil
	}
	address := geocoded.FormattedAddress
	current.Label = "Current Location: " + address

	place, err := s.platform.Resolve(ctx, geocoded.PlaceID, currentLocationFields)
	if err != nil || place == nil {
		s.logger.Warnf("Place lookup for %s failed, using geocoded address: %v", geocoded.PlaceID, err)
		current.PlaceID = geocoded.PlaceID
		current.Name = address
		current.FormattedAddress = address
		return current, nil
	}

	current.Place = *place
	if current.Location == nil {
		current.Location = &loc
	}
	return current, nil
}

// Details fetches the rich record for the details view.
func (s *Service) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	details, err := s.platform.Details(ctx, placeID)
	if err != nil {
		s.logger.Errorf("Place details for %s failed: %v", placeID, err)
		return nil, fmt.Errorf("service.Details: %v: %w", err, models.ErrDetailsFetchFailed)
	}
	return details, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
