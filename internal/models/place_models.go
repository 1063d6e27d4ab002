package models

// Suggestion is one autocomplete prediction.
type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// Place is a resolved address or point of interest.
type Place struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	FormattedAddress string    `json:"formatted_address"`
	Location         *GeoPoint `json:"location,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	ReviewCount      *int      `json:"review_count,omitempty"`
}

// OpeningHours is the weekly schedule of a place.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// PlacePhoto references a photo hosted by the mapping platform.
type PlacePhoto struct {
	Reference string `json:"reference"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// PlaceReview is a single user review.
type PlaceReview struct {
	Author string `json:"author"`
	Rating int    `json:"rating"`
	Text   string `json:"text"`
	Time   int    `json:"time"`
}

// PlaceDetails is the rich record shown in the details view.
type PlaceDetails struct {
	Place
	Phone        string        `json:"phone,omitempty"`
	Website      string        `json:"website,omitempty"`
	MapsURL      string        `json:"maps_url,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
	Photos       []PlacePhoto  `json:"photos,omitempty"`
	Reviews      []PlaceReview `json:"reviews,omitempty"`
}

// CurrentPlace is the device location turned into a selectable place. Label
// is the text shown in the address field.
type CurrentPlace struct {
	Place
	Label string `json:"label"`
}
