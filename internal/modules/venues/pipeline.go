// Package venues discovers candidate meeting places around a midpoint and
// annotates them with the trip cost from both parties.
package venues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meet-halfway/internal/config"
	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

// Platform is the part of the mapping platform the pipeline needs.
type Platform interface {
	Search(ctx context.Context, center models.GeoPoint, radiusMeters int, category models.Category) ([]models.Venue, error)
	Matrix(ctx context.Context, origins, destinations []models.GeoPoint) (models.CostGrid, error)
}

// PipelineInterface defines the contract for venue discovery and enrichment.
type PipelineInterface interface {
	Discover(ctx context.Context, params models.SearchParameters) ([]models.Venue, error)
	SearchAndEnrich(ctx context.Context, midpoint, originA, originB models.GeoPoint, params models.SearchParameters) ([]models.EnrichedVenue, error)
	EnrichBatch(ctx context.Context, venues []models.EnrichedVenue, originA, originB models.GeoPoint) error
	EnrichOne(ctx context.Context, venue models.Venue, originA, originB models.GeoPoint) (models.TripCosts, error)
	Policy() string
}

// Pipeline implements PipelineInterface. Trip costs are cached per venue and
// origin pair, so repeated lookups never hit the platform twice.
type Pipeline struct {
	platform Platform
	logger   echo.Logger
	timeout  time.Duration
	policy   string
	costs    *cache.Cache
}

// NewPipeline creates a pipeline using the given enrichment policy
// (config.PolicyLazy or config.PolicyBatch).
func NewPipeline(platform Platform, logger echo.Logger, timeout time.Duration, policy string, costTTL time.Duration) *Pipeline {
	if policy != config.PolicyBatch {
		policy = config.PolicyLazy
	}
	return &Pipeline{
		platform: platform,
		logger:   logger,
		timeout:  timeout,
		policy:   policy,
		costs:    cache.New(costTTL, 2*costTTL),
	}
}

// Policy reports the enrichment policy in use.
func (p *Pipeline) Policy() string {
	return p.policy
}

// Discover runs a single nearby search. The platform's order is kept.
func (p *Pipeline) Discover(ctx context.Context, params models.SearchParameters) ([]models.Venue, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	venues, err := p.platform.Search(ctx, params.Center, params.RadiusMeters, params.Category)
	if err != nil {
		p.logger.Errorf("Nearby search for %s within %dm failed: %v", params.Category, params.RadiusMeters, err)
		if errors.Is(err, models.ErrTimeout) || errors.Is(err, models.ErrPlatformUnavailable) {
			return nil, fmt.Errorf("pipeline.Discover: %w", err)
		}
		return nil, fmt.Errorf("pipeline.Discover: %v: %w", err, models.ErrSearchUnavailable)
	}
	if venues == nil {
		venues = []models.Venue{}
	}
	return venues, nil
}

// SearchAndEnrich discovers venues around midpoint and, under the batch
// policy, fills their trip costs with one matrix call. Under the lazy policy
// only cached costs are attached; the rest load on first visibility.
//
// A failed batch lookup returns the venues together with
// models.ErrEnrichmentPartial.
func (p *Pipeline) SearchAndEnrich(ctx context.Context, midpoint, originA, originB models.GeoPoint, params models.SearchParameters) ([]models.EnrichedVenue, error) {
	params.Center = midpoint
	found, err := p.Discover(ctx, params)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedVenue, len(found))
	for i, v := range found {
		enriched[i] = models.EnrichedVenue{Venue: v}
	}
	if len(enriched) == 0 {
		return enriched, nil
	}

	if p.policy == config.PolicyBatch {
		if err := p.EnrichBatch(ctx, enriched, originA, originB); err != nil {
			return enriched, err
		}
		return enriched, nil
	}

	for i := range enriched {
		if costs, ok := p.cached(enriched[i].Venue, originA, originB); ok {
			enriched[i].Costs = costs
			enriched[i].CostsLoaded = true
		}
	}
	return enriched, nil
}

// EnrichBatch fills costs in place for every venue that has geometry.
// Venues without a location keep blank costs.
func (p *Pipeline) EnrichBatch(ctx context.Context, venues []models.EnrichedVenue, originA, originB models.GeoPoint) error {
	var (
		index        []int
		destinations []models.GeoPoint
	)
	for i := range venues {
		if costs, ok := p.cached(venues[i].Venue, originA, originB); ok {
			venues[i].Costs = costs
			venues[i].CostsLoaded = true
			continue
		}
		if venues[i].Location == nil {
			continue
		}
		index = append(index, i)
		destinations = append(destinations, *venues[i].Location)
	}
	if len(destinations) == 0 {
		return nil
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	grid, err := p.platform.Matrix(ctx, []models.GeoPoint{originA, originB}, destinations)
	if err != nil {
		p.logger.Warnf("Distance matrix for %d venues failed: %v", len(destinations), err)
		return fmt.Errorf("pipeline.EnrichBatch: %v: %w", err, models.ErrEnrichmentPartial)
	}

	for j, i := range index {
		costs := costsAt(grid, j)
		venues[i].Costs = costs
		venues[i].CostsLoaded = true
		p.store(venues[i].Venue, originA, originB, costs)
	}
	return nil
}

// EnrichOne looks up the trip costs for a single venue. A venue without
// geometry has no costs; a failed lookup returns blank costs and
// models.ErrEnrichmentPartial.
func (p *Pipeline) EnrichOne(ctx context.Context, venue models.Venue, originA, originB models.GeoPoint) (models.TripCosts, error) {
	if costs, ok := p.cached(venue, originA, originB); ok {
		return costs, nil
	}
	if venue.Location == nil {
		return models.TripCosts{}, nil
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	grid, err := p.platform.Matrix(ctx, []models.GeoPoint{originA, originB}, []models.GeoPoint{*venue.Location})
	if err != nil {
		p.logger.Warnf("Trip costs for %s failed: %v", venue.PlaceID, err)
		return models.TripCosts{}, fmt.Errorf("pipeline.EnrichOne: %v: %w", err, models.ErrEnrichmentPartial)
	}

	costs := costsAt(grid, 0)
	p.store(venue, originA, originB, costs)
	return costs, nil
}

func costsAt(grid models.CostGrid, destination int) models.TripCosts {
	var costs models.TripCosts
	if a := grid.Cell(0, destination); a.OK {
		costs.DistanceFromA = a.DistanceText
		costs.DurationFromA = a.DurationText
	}
	if b := grid.Cell(1, destination); b.OK {
		costs.DistanceFromB = b.DistanceText
		costs.DurationFromB = b.DurationText
	}
	return costs
}

func cacheKey(venue models.Venue, originA, originB models.GeoPoint) string {
	return venue.PlaceID + "|" + originA.String() + "|" + originB.String()
}

func (p *Pipeline) cached(venue models.Venue, originA, originB models.GeoPoint) (models.TripCosts, bool) {
	if venue.PlaceID == "" {
		return models.TripCosts{}, false
	}
	v, ok := p.costs.Get(cacheKey(venue, originA, originB))
	if !ok {
		return models.TripCosts{}, false
	}
	return v.(models.TripCosts), true
}

// store keeps only lookups that produced at least one value.
func (p *Pipeline) store(venue models.Venue, originA, originB models.GeoPoint, costs models.TripCosts) {
	if venue.PlaceID == "" || costs.IsZero() {
		return
	}
	p.costs.SetDefault(cacheKey(venue, originA, originB), costs)
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
