// Package session owns the per-client state slot: the current midpoint, the
// venue list and which venues have been enriched. It sequences calculate and
// search, discards stale search results and drives lazy enrichment.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"meet-halfway/internal/models"
	"meet-halfway/internal/modules/midpoint"
	"meet-halfway/internal/modules/places"
	"meet-halfway/internal/modules/share"
	"meet-halfway/internal/modules/venues"

	"github.com/labstack/echo/v4"
)

// Defaults are applied when a request leaves mode, category or radius empty.
type Defaults struct {
	Mode         models.OptimizationMode
	Category     models.Category
	RadiusMeters int
}

// Deps are the services every session delegates to.
type Deps struct {
	Midpoint midpoint.ServiceInterface
	Venues   venues.PipelineInterface
	Places   places.ServiceInterface
	Share    share.ServiceInterface
	Logger   echo.Logger
	Defaults Defaults
}

// Session is one client's state slot. All fields are guarded by mu; platform
// calls always run with mu released.
type Session struct {
	ID   string
	deps *Deps

	mu          sync.Mutex
	calculating bool
	midpoint    *models.Midpoint
	mode        models.OptimizationMode
	category    models.Category
	radius      int
	venues      []models.EnrichedVenue
	unavailable map[string]bool
	loaded      map[string]bool
	details     map[string]*models.PlaceDetails
	generation  uint64
	partial     bool
	lastErr     string
	updatedAt   time.Time
}

func newSession(id string, deps *Deps) *Session {
	return &Session{
		ID:          id,
		deps:        deps,
		mode:        deps.Defaults.Mode,
		category:    deps.Defaults.Category,
		radius:      deps.Defaults.RadiusMeters,
		unavailable: make(map[string]bool),
		loaded:      make(map[string]bool),
		details:     make(map[string]*models.PlaceDetails),
		updatedAt:   time.Now(),
	}
}

// Calculate computes a new midpoint and then searches around it. Only one
// calculation may run per session; on failure the previous midpoint and
// venues are kept and no search is started.
func (s *Session) Calculate(ctx context.Context, req models.CalculateRequest) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	if s.calculating {
		s.mu.Unlock()
		return nil, models.ErrCalculationInFlight
	}
	s.calculating = true
	mode := req.Mode
	if mode == "" {
		mode = s.deps.Defaults.Mode
	}
	s.mu.Unlock()

	m, err := s.deps.Midpoint.Calculate(ctx, req.OriginA, req.OriginB, mode)

	s.mu.Lock()
	s.calculating = false
	if err != nil {
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, fmt.Errorf("session.Calculate: %w", err)
	}
	s.midpoint = m
	s.mode = m.Mode
	if req.Category != "" {
		s.category = req.Category
	}
	if req.RadiusMeters != 0 {
		s.radius = req.RadiusMeters
	}
	gen, params := s.beginSearch()
	s.mu.Unlock()

	return s.runSearch(ctx, gen, m, params)
}

// Search re-runs venue discovery around the current midpoint with a new
// category and radius.
func (s *Session) Search(ctx context.Context, req models.SearchRequest) (*models.SessionSnapshot, error) {
	s.mu.Lock()
	if s.midpoint == nil {
		s.mu.Unlock()
		return nil, models.ErrNoMidpoint
	}
	s.category = req.Category
	s.radius = req.RadiusMeters
	m := s.midpoint
	gen, params := s.beginSearch()
	s.mu.Unlock()

	return s.runSearch(ctx, gen, m, params)
}

// beginSearch tags a new search. Callers hold mu.
func (s *Session) beginSearch() (uint64, models.SearchParameters) {
	s.generation++
	return s.generation, models.SearchParameters{
		Center:       s.midpoint.Point,
		Category:     s.category,
		RadiusMeters: s.radius,
	}
}

// runSearch executes search generation gen. If another search started in
// the meantime the result is dropped and the current state is returned.
func (s *Session) runSearch(ctx context.Context, gen uint64, m *models.Midpoint, params models.SearchParameters) (*models.SessionSnapshot, error) {
	found, err := s.deps.Venues.SearchAndEnrich(ctx, m.Point, m.OriginA, m.OriginB, params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.deps.Logger.Debugf("Session %s: dropping stale search %d (current %d)", s.ID, gen, s.generation)
		return s.snapshotLocked(), nil
	}

	partial := errors.Is(err, models.ErrEnrichmentPartial)
	if err != nil && !partial {
		s.replaceVenues(nil)
		s.partial = false
		s.lastErr = err.Error()
		return nil, fmt.Errorf("session.Search: %w", err)
	}

	s.replaceVenues(found)
	s.partial = partial
	s.lastErr = ""
	return s.snapshotLocked(), nil
}

// replaceVenues swaps the list wholesale and resets per-venue flags.
// Callers hold mu.
func (s *Session) replaceVenues(list []models.EnrichedVenue) {
	s.venues = list
	s.loaded = make(map[string]bool, len(list))
	s.unavailable = make(map[string]bool)
	s.details = make(map[string]*models.PlaceDetails)
	for _, v := range list {
		if v.CostsLoaded {
			s.loaded[v.PlaceID] = true
		}
	}
	s.updatedAt = time.Now()
}

// Activate is called the first time a venue card becomes visible. The
// first call loads the trip costs; later calls return the current card.
func (s *Session) Activate(ctx context.Context, placeID string) (*models.VenueCard, error) {
	s.mu.Lock()
	idx := s.indexOf(placeID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("session.Activate: venue %s: %w", placeID, models.ErrNotFound)
	}
	if s.loaded[placeID] {
		card := s.cardLocked(idx)
		s.mu.Unlock()
		return &card, nil
	}
	// Mark before the call so concurrent activations do not fetch twice.
	s.loaded[placeID] = true
	gen := s.generation
	venue := s.venues[idx].Venue
	m := s.midpoint
	s.mu.Unlock()

	costs, err := s.deps.Venues.EnrichOne(ctx, venue, m.OriginA, m.OriginB)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// The list was replaced; report the result without storing it.
		card := models.VenueCard{
			EnrichedVenue: models.EnrichedVenue{Venue: venue, Costs: costs, CostsLoaded: true},
			DirectionsURL: share.DirectionsURL(venue),
		}
		return &card, nil
	}
	if err != nil {
		s.unavailable[placeID] = true
	}
	s.venues[idx].Costs = costs
	s.venues[idx].CostsLoaded = true
	s.updatedAt = time.Now()
	card := s.cardLocked(idx)
	return &card, nil
}

// Select opens the details view for a listed venue. Details are fetched once
// per venue list; a failure is not remembered so the view can retry.
func (s *Session) Select(ctx context.Context, placeID string) (*models.PlaceDetails, error) {
	s.mu.Lock()
	if s.indexOf(placeID) < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("session.Select: venue %s: %w", placeID, models.ErrNotFound)
	}
	if d, ok := s.details[placeID]; ok {
		s.mu.Unlock()
		return d, nil
	}
	gen := s.generation
	s.mu.Unlock()

	d, err := s.deps.Places.Details(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("session.Select: %w", err)
	}

	s.mu.Lock()
	if gen == s.generation {
		s.details[placeID] = d
	}
	s.mu.Unlock()
	return d, nil
}

// Share sends the meeting message for a listed venue.
func (s *Session) Share(ctx context.Context, placeID string, req models.ShareRequest) (*models.ShareResult, error) {
	s.mu.Lock()
	idx := s.indexOf(placeID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("session.Share: venue %s: %w", placeID, models.ErrNotFound)
	}
	venue := s.venues[idx].Venue
	s.mu.Unlock()

	res, err := s.deps.Share.Share(ctx, venue, req)
	if err != nil {
		return nil, fmt.Errorf("session.Share: %w", err)
	}
	return res, nil
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() *models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() *models.SessionSnapshot {
	cards := make([]models.VenueCard, len(s.venues))
	for i := range s.venues {
		cards[i] = s.cardLocked(i)
	}
	return &models.SessionSnapshot{
		ID:                s.ID,
		Midpoint:          s.midpoint,
		Mode:              s.mode,
		Category:          s.category,
		RadiusMeters:      s.radius,
		Venues:            cards,
		Generation:        s.generation,
		Calculating:       s.calculating,
		EnrichmentPolicy:  s.deps.Venues.Policy(),
		EnrichmentPartial: s.partial,
		Error:             s.lastErr,
		UpdatedAt:         s.updatedAt,
	}
}

func (s *Session) cardLocked(idx int) models.VenueCard {
	v := s.venues[idx]
	return models.VenueCard{
		EnrichedVenue:    v,
		DirectionsURL:    share.DirectionsURL(v.Venue),
		CostsUnavailable: s.unavailable[v.PlaceID] || (s.partial && !v.CostsLoaded),
	}
}

func (s *Session) indexOf(placeID string) int {
	for i := range s.venues {
		if s.venues[i].PlaceID == placeID {
			return i
		}
	}
	return -1
}
