package venues

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"meet-halfway/internal/config"
	"meet-halfway/internal/logging"
	"meet-halfway/internal/models"
)

type fakePlatform struct {
	mu          sync.Mutex
	venues      []models.Venue
	searchErr   error
	matrixErr   error
	searches    int
	matrixCalls int
	lastDests   []models.GeoPoint
}

func (f *fakePlatform) Search(_ context.Context, _ models.GeoPoint, _ int, _ models.Category) ([]models.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	return f.venues, f.searchErr
}

func (f *fakePlatform) Matrix(_ context.Context, origins, destinations []models.GeoPoint) (models.CostGrid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matrixCalls++
	f.lastDests = destinations
	if f.matrixErr != nil {
		return nil, f.matrixErr
	}
	grid := make(models.CostGrid, len(origins))
	for i := range origins {
		grid[i] = make([]models.CostCell, len(destinations))
		for j := range destinations {
			grid[i][j] = models.CostCell{DistanceText: "1 mi", DurationText: "5 mins", OK: true}
		}
	}
	return grid, nil
}

func at(lat, lng float64) *models.GeoPoint {
	return &models.GeoPoint{Lat: lat, Lng: lng}
}

var (
	originA = models.GeoPoint{Lat: 40, Lng: -105}
	originB = models.GeoPoint{Lat: 41, Lng: -104}
	center  = models.GeoPoint{Lat: 40.5, Lng: -104.5}
	params  = models.SearchParameters{Category: models.CategoryRestaurant, RadiusMeters: models.Radius5Miles}
)

func sampleVenues() []models.Venue {
	return []models.Venue{
		{PlaceID: "v1", Name: "First", Location: at(40.5, -104.5)},
		{PlaceID: "v2", Name: "No Geometry"},
		{PlaceID: "v3", Name: "Third", Location: at(40.6, -104.6)},
	}
}

func newPipeline(fp *fakePlatform, policy string) *Pipeline {
	return NewPipeline(fp, logging.Discard(), time.Second, policy, time.Minute)
}

func TestSearchAndEnrichBatchPreservesOrder(t *testing.T) {
	fp := &fakePlatform{venues: sampleVenues()}
	p := newPipeline(fp, config.PolicyBatch)

	got, err := p.SearchAndEnrich(context.Background(), center, originA, originB, params)
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d venues, want 3", len(got))
	}
	for i, id := range []string{"v1", "v2", "v3"} {
		if got[i].PlaceID != id {
			t.Fatalf("position %d = %s, want %s", i, got[i].PlaceID, id)
		}
	}
	if fp.matrixCalls != 1 || len(fp.lastDests) != 2 {
		t.Fatalf("matrix calls = %d, destinations = %d", fp.matrixCalls, len(fp.lastDests))
	}
	if got[0].Costs.DurationFromA != "5 mins" || got[2].Costs.DistanceFromB != "1 mi" {
		t.Fatalf("costs not filled: %+v", got)
	}
	if !got[1].Costs.IsZero() || got[1].CostsLoaded {
		t.Fatalf("venue without geometry should stay blank: %+v", got[1])
	}
}

func TestSearchAndEnrichZeroVenuesSkipsMatrix(t *testing.T) {
	fp := &fakePlatform{}
	p := newPipeline(fp, config.PolicyBatch)

	cafe := models.SearchParameters{Category: models.CategoryCafe, RadiusMeters: models.Radius1Mile}
	got, err := p.SearchAndEnrich(context.Background(), center, originA, originB, cafe)
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", got)
	}
	if fp.matrixCalls != 0 {
		t.Fatalf("matrix called %d times for zero venues", fp.matrixCalls)
	}
}

func TestSearchAndEnrichBatchFailureIsPartial(t *testing.T) {
	fp := &fakePlatform{venues: sampleVenues(), matrixErr: errors.New("OVER_QUERY_LIMIT")}
	p := newPipeline(fp, config.PolicyBatch)

	got, err := p.SearchAndEnrich(context.Background(), center, originA, originB, params)
	if !errors.Is(err, models.ErrEnrichmentPartial) {
		t.Fatalf("err = %v, want ErrEnrichmentPartial", err)
	}
	if len(got) != 3 {
		t.Fatalf("venues should still be returned, got %d", len(got))
	}
	for _, v := range got {
		if !v.Costs.IsZero() {
			t.Fatalf("costs should be unset after failure: %+v", v)
		}
	}
}

func TestDiscoverFailure(t *testing.T) {
	fp := &fakePlatform{searchErr: errors.New("REQUEST_DENIED")}
	p := newPipeline(fp, config.PolicyLazy)

	if _, err := p.SearchAndEnrich(context.Background(), center, originA, originB, params); !errors.Is(err, models.ErrSearchUnavailable) {
		t.Fatalf("err = %v, want ErrSearchUnavailable", err)
	}

	fp.searchErr = models.ErrTimeout
	if _, err := p.Discover(context.Background(), params); !errors.Is(err, models.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestLazyPolicyDefersCosts(t *testing.T) {
	fp := &fakePlatform{venues: sampleVenues()}
	p := newPipeline(fp, config.PolicyLazy)

	got, err := p.SearchAndEnrich(context.Background(), center, originA, originB, params)
	if err != nil {
		t.Fatalf("SearchAndEnrich: %v", err)
	}
	if fp.matrixCalls != 0 {
		t.Fatalf("lazy policy must not call the matrix up front")
	}

	costs, err := p.EnrichOne(context.Background(), got[0].Venue, originA, originB)
	if err != nil {
		t.Fatalf("EnrichOne: %v", err)
	}
	if costs.DurationFromB != "5 mins" {
		t.Fatalf("costs = %+v", costs)
	}

	// Second lookup is served from the cache.
	if _, err := p.EnrichOne(context.Background(), got[0].Venue, originA, originB); err != nil {
		t.Fatalf("EnrichOne (cached): %v", err)
	}
	if fp.matrixCalls != 1 {
		t.Fatalf("matrix calls = %d, want 1", fp.matrixCalls)
	}

	// A new search with the same origins attaches the cached costs.
	again, _ := p.SearchAndEnrich(context.Background(), center, originA, originB, params)
	if !again[0].CostsLoaded || again[0].Costs != costs {
		t.Fatalf("cached costs not attached: %+v", again[0])
	}
}

func TestEnrichOneEdgeCases(t *testing.T) {
	fp := &fakePlatform{matrixErr: errors.New("boom")}
	p := newPipeline(fp, config.PolicyLazy)

	costs, err := p.EnrichOne(context.Background(), models.Venue{PlaceID: "nogeo"}, originA, originB)
	if err != nil || !costs.IsZero() || fp.matrixCalls != 0 {
		t.Fatalf("venue without geometry: costs=%+v err=%v calls=%d", costs, err, fp.matrixCalls)
	}

	costs, err = p.EnrichOne(context.Background(), models.Venue{PlaceID: "v1", Location: at(1, 1)}, originA, originB)
	if !errors.Is(err, models.ErrEnrichmentPartial) || !costs.IsZero() {
		t.Fatalf("failed lookup: costs=%+v err=%v", costs, err)
	}
}

func TestCostCacheIsKeyedByOrigins(t *testing.T) {
	fp := &fakePlatform{}
	p := newPipeline(fp, config.PolicyLazy)
	v := models.Venue{PlaceID: "v1", Location: at(1, 1)}

	if _, err := p.EnrichOne(context.Background(), v, originA, originB); err != nil {
		t.Fatalf("EnrichOne: %v", err)
	}
	if _, err := p.EnrichOne(context.Background(), v, originB, originA); err != nil {
		t.Fatalf("EnrichOne: %v", err)
	}
	if fp.matrixCalls != 2 {
		t.Fatalf("different origins must not share a cache entry, calls = %d", fp.matrixCalls)
	}
}

func TestUnknownPolicyFallsBackToLazy(t *testing.T) {
	if got := newPipeline(&fakePlatform{}, "eager").Policy(); got != config.PolicyLazy {
		t.Fatalf("Policy() = %q", got)
	}
}
