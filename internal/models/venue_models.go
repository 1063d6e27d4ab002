package models

// Category is the closed set of venue types the nearby search accepts.
type Category string

const (
	CategoryRestaurant   Category = "restaurant"
	CategoryCafe         Category = "cafe"
	CategoryBar          Category = "bar"
	CategoryPark         Category = "park"
	CategoryShoppingMall Category = "shopping_mall"
)

// Categories lists every supported category in display order.
var Categories = []Category{CategoryRestaurant, CategoryCafe, CategoryBar, CategoryPark, CategoryShoppingMall}

// Valid reports whether c belongs to Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Search radius presets in meters (1, 3, 5 and 10 miles).
const (
	Radius1Mile   = 1609
	Radius3Miles  = 4828
	Radius5Miles  = 8047
	Radius10Miles = 16093
)

// RadiusPresets lists every allowed search radius.
var RadiusPresets = []int{Radius1Mile, Radius3Miles, Radius5Miles, Radius10Miles}

// ValidRadius reports whether meters is one of RadiusPresets.
func ValidRadius(meters int) bool {
	for _, r := range RadiusPresets {
		if r == meters {
			return true
		}
	}
	return false
}

// SearchParameters drives one nearby search.
type SearchParameters struct {
	Center       GeoPoint `json:"center"`
	Category     Category `json:"category"`
	RadiusMeters int      `json:"radius_meters"`
}

// Venue is a candidate meeting place as returned by the nearby search.
type Venue struct {
	PlaceID     string    `json:"place_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Rating      *float64  `json:"rating,omitempty"`
	ReviewCount *int      `json:"review_count,omitempty"`
	Location    *GeoPoint `json:"location,omitempty"`
	Types       []string  `json:"types,omitempty"`
}

// TripCosts holds the travel cost from each party to a venue, as display
// text. Empty fields mean "not known".
type TripCosts struct {
	DistanceFromA string `json:"distance_from_a,omitempty"`
	DurationFromA string `json:"duration_from_a,omitempty"`
	DistanceFromB string `json:"distance_from_b,omitempty"`
	DurationFromB string `json:"duration_from_b,omitempty"`
}

// IsZero reports whether no cost field is set.
func (t TripCosts) IsZero() bool {
	return t == TripCosts{}
}

// EnrichedVenue is a venue plus whatever trip costs are known so far.
type EnrichedVenue struct {
	Venue
	Costs       TripCosts `json:"costs"`
	CostsLoaded bool      `json:"costs_loaded"`
}

// CostCell is one origin/destination entry of a distance matrix.
type CostCell struct {
	DistanceText string `json:"distance_text,omitempty"`
	DurationText string `json:"duration_text,omitempty"`
	OK           bool   `json:"ok"`
}

// CostGrid is indexed [origin][destination].
type CostGrid [][]CostCell

// Cell returns the cell at (origin, destination) or an empty cell when out of range.
func (g CostGrid) Cell(origin, destination int) CostCell {
	if origin < 0 || origin >= len(g) {
		return CostCell{}
	}
	row := g[origin]
	if destination < 0 || destination >= len(row) {
		return CostCell{}
	}
	return row[destination]
}
