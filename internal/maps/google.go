package maps

import (
	"context"
	"fmt"

	"meet-halfway/internal/models"

	gmaps "googlemaps.github.io/maps"
)

// detailFields are requested for the details view.
var detailFields = []string{
	"name",
	"rating",
	"user_ratings_total",
	"formatted_address",
	"formatted_phone_number",
	"opening_hours",
	"website",
	"photos",
	"reviews",
	"geometry",
	"place_id",
	"url",
}

// GoogleClient implements Provider on top of the Google Maps web services.
type GoogleClient struct {
	client *gmaps.Client
}

// NewGoogleClient builds a client for apiKey. Extra options are appended
// last so callers (and tests) can override the base URL or HTTP client.
func NewGoogleClient(apiKey string, rateLimit int, opts ...gmaps.ClientOption) (*GoogleClient, error) {
	options := []gmaps.ClientOption{gmaps.WithAPIKey(apiKey)}
	if rateLimit > 0 {
		options = append(options, gmaps.WithRateLimit(rateLimit))
	}
	options = append(options, opts...)

	c, err := gmaps.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("maps.NewGoogleClient: %w", err)
	}
	return &GoogleClient{client: c}, nil
}

// Route calls the Directions API in driving mode and keeps the first route.
func (g *GoogleClient) Route(ctx context.Context, origin, destination models.GeoPoint) (*models.Route, error) {
	routes, _, err := g.client.Directions(ctx, &gmaps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        gmaps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("google.Route: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("google.Route: %w", models.ErrInvalidRoute)
	}
	return convertRoute(routes[0])
}

// Search runs one Nearby Search request. Pagination is not followed.
func (g *GoogleClient) Search(ctx context.Context, center models.GeoPoint, radiusMeters int, category models.Category) ([]models.Venue, error) {
	resp, err := g.client.NearbySearch(ctx, &gmaps.NearbySearchRequest{
		Location: toLatLng(center),
		Radius:   uint(radiusMeters),
		Type:     gmaps.PlaceType(category),
	})
	if err != nil {
		return nil, fmt.Errorf("google.Search: %w", err)
	}

	venues := make([]models.Venue, 0, len(resp.Results))
	for _, r := range resp.Results {
		venues = append(venues, venueFromResult(r))
	}
	return venues, nil
}

// Matrix calls the Distance Matrix API in driving mode.
func (g *GoogleClient) Matrix(ctx context.Context, origins, destinations []models.GeoPoint) (models.CostGrid, error) {
	resp, err := g.client.DistanceMatrix(ctx, &gmaps.DistanceMatrixRequest{
		Origins:      pointStrings(origins),
		Destinations: pointStrings(destinations),
		Mode:         gmaps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("google.Matrix: %w", err)
	}
	return convertMatrix(resp, len(origins), len(destinations)), nil
}

// Suggest returns autocomplete predictions for text.
func (g *GoogleClient) Suggest(ctx context.Context, text string) ([]models.Suggestion, error) {
	resp, err := g.client.PlaceAutocomplete(ctx, &gmaps.PlaceAutocompleteRequest{Input: text})
	if err != nil {
		return nil, fmt.Errorf("google.Suggest: %w", err)
	}

	out := make([]models.Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, models.Suggestion{Description: p.Description, PlaceID: p.PlaceID})
	}
	return out, nil
}

// Resolve fetches the requested fields of a place.
func (g *GoogleClient) Resolve(ctx context.Context, placeID string, fields []string) (*models.Place, error) {
	res, err := g.client.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  fieldMasks(fields),
	})
	if err != nil {
		return nil, fmt.Errorf("google.Resolve: %w", err)
	}
	place := placeFromDetails(res)
	return &place, nil
}

// ReverseGeocode returns the best address for a point.
func (g *GoogleClient) ReverseGeocode(ctx context.Context, point models.GeoPoint) (*models.Place, error) {
	results, err := g.client.ReverseGeocode(ctx, &gmaps.GeocodingRequest{LatLng: toLatLng(point)})
	if err != nil {
		return nil, fmt.Errorf("google.ReverseGeocode: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("google.ReverseGeocode: %w", models.ErrNotFound)
	}

	r := results[0]
	loc := fromLatLng(r.Geometry.Location)
	return &models.Place{
		PlaceID:          r.PlaceID,
		Name:             r.FormattedAddress,
		FormattedAddress: r.FormattedAddress,
		Location:         &loc,
	}, nil
}

// Details fetches hours, phone, website, photos and reviews for a place.
func (g *GoogleClient) Details(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	res, err := g.client.PlaceDetails(ctx, &gmaps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  fieldMasks(detailFields),
	})
	if err != nil {
		return nil, fmt.Errorf("google.Details: %w", err)
	}
	return detailsFromResult(res), nil
}
