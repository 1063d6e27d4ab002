package maps

import (
	"fmt"
	"math"
	"strings"
	"time"

	"meet-halfway/internal/models"

	gmaps "googlemaps.github.io/maps"
)

func toLatLng(p models.GeoPoint) *gmaps.LatLng {
	return &gmaps.LatLng{Lat: p.Lat, Lng: p.Lng}
}

func fromLatLng(ll gmaps.LatLng) models.GeoPoint {
	return models.GeoPoint{Lat: ll.Lat, Lng: ll.Lng}
}

// optionalLocation treats the (0,0) placeholder the API sends for missing
// geometry as absent.
func optionalLocation(ll gmaps.LatLng) *models.GeoPoint {
	if ll.Lat == 0 && ll.Lng == 0 {
		return nil
	}
	p := fromLatLng(ll)
	return &p
}

// roundRating keeps one decimal; zero means "unrated".
func roundRating(r float32) *float64 {
	if r <= 0 {
		return nil
	}
	v := math.Round(float64(r)*10) / 10
	return &v
}

func optionalCount(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func pointStrings(points []models.GeoPoint) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.String()
	}
	return out
}

func fieldMasks(fields []string) []gmaps.PlaceDetailsFieldMask {
	masks := make([]gmaps.PlaceDetailsFieldMask, 0, len(fields))
	for _, f := range fields {
		m, err := gmaps.ParsePlaceDetailsFieldMask(f)
		if err != nil {
			continue
		}
		masks = append(masks, m)
	}
	return masks
}

func convertRoute(r gmaps.Route) (*models.Route, error) {
	out := &models.Route{Summary: r.Summary, Legs: make([]models.RouteLeg, 0, len(r.Legs))}
	for _, leg := range r.Legs {
		if leg == nil {
			continue
		}
		ml := models.RouteLeg{
			DurationSeconds: models.Float(leg.Duration.Seconds()),
			DistanceMeters:  models.Float(float64(leg.Distance.Meters)),
			DurationText:    FormatDuration(leg.Duration),
			DistanceText:    leg.Distance.HumanReadable,
			StartAddress:    leg.StartAddress,
			EndAddress:      leg.EndAddress,
			Start:           fromLatLng(leg.StartLocation),
			End:             fromLatLng(leg.EndLocation),
			Steps:           make([]models.RouteStep, 0, len(leg.Steps)),
		}
		for _, step := range leg.Steps {
			if step == nil {
				continue
			}
			decoded, err := step.Polyline.Decode()
			if err != nil {
				return nil, fmt.Errorf("convertRoute: decode polyline: %w", err)
			}
			path := make([]models.GeoPoint, 0, len(decoded))
			for _, ll := range decoded {
				path = append(path, fromLatLng(ll))
			}
			if len(path) == 0 {
				path = []models.GeoPoint{fromLatLng(step.StartLocation), fromLatLng(step.EndLocation)}
			}
			ml.Steps = append(ml.Steps, models.RouteStep{
				DurationSeconds: models.Float(step.Duration.Seconds()),
				DistanceMeters:  models.Float(float64(step.Distance.Meters)),
				Instruction:     step.HTMLInstructions,
				Path:            path,
			})
		}
		out.Legs = append(out.Legs, ml)
	}
	return out, nil
}

func convertMatrix(resp *gmaps.DistanceMatrixResponse, origins, destinations int) models.CostGrid {
	grid := make(models.CostGrid, origins)
	for i := range grid {
		grid[i] = make([]models.CostCell, destinations)
		if resp == nil || i >= len(resp.Rows) {
			continue
		}
		for j, el := range resp.Rows[i].Elements {
			if j >= destinations || el == nil || el.Status != "OK" {
				continue
			}
			grid[i][j] = models.CostCell{
				DistanceText: el.Distance.HumanReadable,
				DurationText: FormatDuration(el.Duration),
				OK:           true,
			}
		}
	}
	return grid
}

func venueFromResult(r gmaps.PlacesSearchResult) models.Venue {
	address := r.Vicinity
	if address == "" {
		address = r.FormattedAddress
	}
	return models.Venue{
		PlaceID:     r.PlaceID,
		Name:        r.Name,
		Address:     address,
		Rating:      roundRating(r.Rating),
		ReviewCount: optionalCount(r.UserRatingsTotal),
		Location:    optionalLocation(r.Geometry.Location),
		Types:       r.Types,
	}
}

func placeFromDetails(r gmaps.PlaceDetailsResult) models.Place {
	return models.Place{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Location:         optionalLocation(r.Geometry.Location),
		Rating:           roundRating(r.Rating),
		ReviewCount:      optionalCount(r.UserRatingsTotal),
	}
}

func detailsFromResult(r gmaps.PlaceDetailsResult) *models.PlaceDetails {
	d := &models.PlaceDetails{
		Place:   placeFromDetails(r),
		Phone:   r.FormattedPhoneNumber,
		Website: r.Website,
		MapsURL: r.URL,
	}
	if r.OpeningHours != nil {
		d.OpeningHours = &models.OpeningHours{
			OpenNow:     r.OpeningHours.OpenNow,
			WeekdayText: r.OpeningHours.WeekdayText,
		}
	}
	for _, p := range r.Photos {
		d.Photos = append(d.Photos, models.PlacePhoto{Reference: p.PhotoReference, Width: p.Width, Height: p.Height})
	}
	for _, rv := range r.Reviews {
		d.Reviews = append(d.Reviews, models.PlaceReview{Author: rv.AuthorName, Rating: rv.Rating, Text: rv.Text, Time: rv.Time})
	}
	return d
}

// FormatDuration renders d the way the Distance Matrix API labels trips:
// "1 min", "25 mins", "1 hour 5 mins", "2 days 3 hours".
func FormatDuration(d time.Duration) string {
	mins := int(math.Round(d.Minutes()))
	if mins < 1 {
		mins = 1
	}
	days, hours, minutes := mins/1440, (mins%1440)/60, mins%60

	var parts []string
	switch {
	case days > 0:
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
	case hours > 0:
		parts = append(parts, plural(hours, "hour"))
		if minutes > 0 {
			parts = append(parts, plural(minutes, "min"))
		}
	default:
		parts = append(parts, plural(minutes, "min"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
