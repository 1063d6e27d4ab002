package session

import (
	"context"
	"sync"
	"time"

	"meet-halfway/internal/config"
	"meet-halfway/internal/logging"
	"meet-halfway/internal/models"
)

type fakeMidpoint struct {
	mu      sync.Mutex
	err     error
	gate    chan struct{}
	started chan struct{}
	calls   int
}

func (f *fakeMidpoint) ResolveEndpoint(_ context.Context, e models.Endpoint) (models.GeoPoint, error) {
	if e.Location == nil {
		return models.GeoPoint{}, models.ErrInvalidInput
	}
	return *e.Location, nil
}

func (f *fakeMidpoint) Calculate(ctx context.Context, a, b models.Endpoint, mode models.OptimizationMode) (*models.Midpoint, error) {
	f.mu.Lock()
	f.calls++
	gate, started, err := f.gate, f.started, f.err
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	oa, _ := f.ResolveEndpoint(ctx, a)
	ob, _ := f.ResolveEndpoint(ctx, b)
	mid := models.GeoPoint{Lat: (oa.Lat + ob.Lat) / 2, Lng: (oa.Lng + ob.Lng) / 2}
	return &models.Midpoint{
		ID:      "m-1",
		Point:   mid,
		Mode:    mode,
		OriginA: oa,
		OriginB: ob,
		Route: &models.Route{Legs: []models.RouteLeg{{
			DistanceText: "10 mi",
			DurationText: "20 mins",
			Steps:        []models.RouteStep{{Path: []models.GeoPoint{oa, mid, ob}}},
		}}},
		ComputedAt: time.Now(),
	}, nil
}

type fakePipeline struct {
	mu          sync.Mutex
	results     map[models.Category][]models.EnrichedVenue
	searchErr   error
	gates       map[models.Category]chan struct{}
	started     chan models.Category
	searches    int
	enrichCalls int
	enrichErr   error
}

func (f *fakePipeline) Discover(context.Context, models.SearchParameters) ([]models.Venue, error) {
	return nil, nil
}

func (f *fakePipeline) SearchAndEnrich(_ context.Context, _, _, _ models.GeoPoint, params models.SearchParameters) ([]models.EnrichedVenue, error) {
	f.mu.Lock()
	f.searches++
	gate, started, err := f.gates[params.Category], f.started, f.searchErr
	res := append([]models.EnrichedVenue(nil), f.results[params.Category]...)
	f.mu.Unlock()

	if started != nil {
		started <- params.Category
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (f *fakePipeline) EnrichBatch(context.Context, []models.EnrichedVenue, models.GeoPoint, models.GeoPoint) error {
	return nil
}

func (f *fakePipeline) EnrichOne(_ context.Context, _ models.Venue, _, _ models.GeoPoint) (models.TripCosts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enrichCalls++
	if f.enrichErr != nil {
		return models.TripCosts{}, f.enrichErr
	}
	return models.TripCosts{DistanceFromA: "2 mi", DurationFromA: "6 mins", DistanceFromB: "3 mi", DurationFromB: "9 mins"}, nil
}

func (f *fakePipeline) Policy() string {
	return config.PolicyLazy
}

type fakePlaces struct {
	mu      sync.Mutex
	calls   int
	err     error
	details *models.PlaceDetails
}

func (f *fakePlaces) Autocomplete(context.Context, string) ([]models.Suggestion, error) {
	return nil, nil
}

func (f *fakePlaces) Resolve(context.Context, string) (*models.Place, error) {
	return nil, models.ErrNotFound
}

func (f *fakePlaces) CurrentLocation(context.Context, models.GeoPoint) (*models.CurrentPlace, error) {
	return nil, models.ErrGeolocationUnavailable
}

func (f *fakePlaces) Details(_ context.Context, placeID string) (*models.PlaceDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	d := *f.details
	d.PlaceID = placeID
	return &d, nil
}

type fakeShare struct {
	venue models.Venue
}

func (f *fakeShare) Share(_ context.Context, venue models.Venue, req models.ShareRequest) (*models.ShareResult, error) {
	f.venue = venue
	return &models.ShareResult{Channel: req.Channel, Text: "Let's meet at " + venue.Name + "!"}, nil
}

type fixture struct {
	midpoint *fakeMidpoint
	pipeline *fakePipeline
	places   *fakePlaces
	share    *fakeShare
	store    *Store
}

func venueAt(id, name string, lat, lng float64) models.EnrichedVenue {
	return models.EnrichedVenue{Venue: models.Venue{PlaceID: id, Name: name, Address: name + " St", Location: &models.GeoPoint{Lat: lat, Lng: lng}}}
}

func newFixture() *fixture {
	f := &fixture{
		midpoint: &fakeMidpoint{},
		pipeline: &fakePipeline{
			results: map[models.Category][]models.EnrichedVenue{
				models.CategoryRestaurant: {venueAt("r1", "Diner", 1.5, 1.5), venueAt("r2", "Bistro", 1.6, 1.6)},
				models.CategoryCafe:       {venueAt("c1", "Beans", 1.4, 1.4)},
				models.CategoryBar:        {venueAt("b1", "Taproom", 1.3, 1.3)},
			},
			gates: map[models.Category]chan struct{}{},
		},
		places: &fakePlaces{details: &models.PlaceDetails{Phone: "555-0100"}},
		share:  &fakeShare{},
	}
	deps := &Deps{
		Midpoint: f.midpoint,
		Venues:   f.pipeline,
		Places:   f.places,
		Share:    f.share,
		Logger:   logging.Discard(),
		Defaults: Defaults{Mode: models.ModeTime, Category: models.CategoryRestaurant, RadiusMeters: models.Radius5Miles},
	}
	f.store = NewStore(deps, time.Hour)
	return f
}

func calcRequest() models.CalculateRequest {
	return models.CalculateRequest{
		OriginA: models.Endpoint{Source: models.SourceCoordinates, Location: &models.GeoPoint{Lat: 1, Lng: 1}},
		OriginB: models.Endpoint{Source: models.SourceCoordinates, Location: &models.GeoPoint{Lat: 2, Lng: 2}},
	}
}
