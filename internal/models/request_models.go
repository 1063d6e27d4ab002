package models

// Endpoint sources.
const (
	SourcePlace           = "place"
	SourceCurrentLocation = "current_location"
	SourceCoordinates     = "coordinates"
)

// Endpoint is one party's starting point as sent by the client: either a
// place chosen from autocomplete or raw coordinates.
type Endpoint struct {
	Source   string    `json:"source" validate:"omitempty,oneof=place current_location coordinates"`
	PlaceID  string    `json:"place_id,omitempty"`
	Location *GeoPoint `json:"location,omitempty" validate:"omitempty"`
	Label    string    `json:"label,omitempty"`
}

// CalculateRequest is the body of POST /sessions/:id/calculate.
type CalculateRequest struct {
	OriginA      Endpoint         `json:"origin_a" validate:"required"`
	OriginB      Endpoint         `json:"origin_b" validate:"required"`
	Mode         OptimizationMode `json:"mode" validate:"omitempty,oneof=time distance"`
	Category     Category         `json:"category" validate:"omitempty,category"`
	RadiusMeters int              `json:"radius_meters" validate:"omitempty,radius"`
}

// SearchRequest is the body of PUT /sessions/:id/search.
type SearchRequest struct {
	Category     Category `json:"category" validate:"required,category"`
	RadiusMeters int      `json:"radius_meters" validate:"required,radius"`
}

// Share channels.
const (
	ShareNative    = "native"
	ShareClipboard = "clipboard"
	ShareSMS       = "sms"
	ShareEmail     = "email"
)

// ShareRequest is the body of POST /sessions/:id/venues/:placeId/share.
type ShareRequest struct {
	Channel    string   `json:"channel" validate:"required,oneof=native clipboard sms email"`
	Recipients []string `json:"recipients,omitempty" validate:"required_if=Channel email,dive,email"`
}

// ShareResult tells the client what to hand to the chosen channel.
type ShareResult struct {
	Channel string `json:"channel"`
	Title   string `json:"title,omitempty"`
	Text    string `json:"text"`
	URI     string `json:"uri,omitempty"`
	Sent    bool   `json:"sent,omitempty"`
}
