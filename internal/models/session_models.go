package models

import "time"

// VenueCard is a venue as listed to the client.
type VenueCard struct {
	EnrichedVenue
	DirectionsURL    string `json:"directions_url"`
	CostsUnavailable bool   `json:"costs_unavailable,omitempty"`
}

// SessionSnapshot is the client-visible state of a session.
type SessionSnapshot struct {
	ID                string           `json:"id"`
	Midpoint          *Midpoint        `json:"midpoint,omitempty"`
	Mode              OptimizationMode `json:"mode"`
	Category          Category         `json:"category"`
	RadiusMeters      int              `json:"radius_meters"`
	Venues            []VenueCard      `json:"venues"`
	Generation        uint64           `json:"generation"`
	Calculating       bool             `json:"calculating"`
	EnrichmentPolicy  string           `json:"enrichment_policy"`
	EnrichmentPartial bool             `json:"enrichment_partial"`
	Error             string           `json:"error,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// StreamMessage is exchanged over the session WebSocket. Clients send
// {"type":"visible","place_id":...}; the server answers with "venue" or
// "error" messages.
type StreamMessage struct {
	Type    string     `json:"type"`
	PlaceID string     `json:"place_id,omitempty"`
	Venue   *VenueCard `json:"venue,omitempty"`
	Message string     `json:"message,omitempty"`
}

// Stream message types.
const (
	StreamVisible = "visible"
	StreamVenue   = "venue"
	StreamError   = "error"
)
