package models

import "errors"

var (
	// ErrNotFound is returned when a requested session or venue does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrPlatformUnavailable is returned before any network call when the
	// mapping platform has not been initialized.
	ErrPlatformUnavailable = errors.New("mapping platform not ready")

	// ErrInvalidInput is returned when an endpoint has no resolvable coordinates.
	ErrInvalidInput = errors.New("endpoint missing location data")

	// ErrGeolocationUnavailable is returned when a "current location" endpoint
	// arrives without device coordinates.
	ErrGeolocationUnavailable = errors.New("current location unavailable")

	// ErrInvalidRoute is returned when a route has no usable legs, steps or path.
	ErrInvalidRoute = errors.New("route has no usable legs or steps")

	// ErrSearchUnavailable is returned when venue discovery fails.
	ErrSearchUnavailable = errors.New("venue search unavailable")

	// ErrEnrichmentPartial is non-fatal: venues were found but trip costs
	// could not be fetched.
	ErrEnrichmentPartial = errors.New("trip cost lookup failed")

	// ErrDetailsFetchFailed is returned when the place details lookup fails.
	ErrDetailsFetchFailed = errors.New("place details unavailable")

	// ErrTimeout is returned when a mapping call exceeds the request timeout.
	ErrTimeout = errors.New("mapping service timed out")

	// ErrCalculationInFlight is returned when a session is already computing a midpoint.
	ErrCalculationInFlight = errors.New("a calculation is already running")

	// ErrNoMidpoint is returned when a search is requested before any midpoint exists.
	ErrNoMidpoint = errors.New("no midpoint calculated yet")

	// ErrShareUnavailable is returned when the chosen share channel is not configured.
	ErrShareUnavailable = errors.New("share channel unavailable")
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}
