package api

import (
	"net/http"

	"meet-halfway/internal/api/middleware"
	"meet-halfway/internal/modules/places"
	"meet-halfway/internal/modules/session"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application. mapsReady
// reports whether the mapping platform can take calls.
func SetupRoutes(
	e *echo.Echo,
	placesHandler *places.Handler,
	sessionHandler *session.Handler,
	mapsReady func() error,
) {
	readyRequired := middleware.MapsReady(mapsReady)

	// --- Public Routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"maps_ready": mapsReady() == nil,
		})
	})

	// --- Address Entry ---
	placesGroup := e.Group("/places", readyRequired)
	{
		placesGroup.GET("/autocomplete", placesHandler.Autocomplete)
		placesGroup.GET("/current", placesHandler.CurrentLocation)
		placesGroup.GET("/:placeId", placesHandler.GetPlace)
	}

	// --- Sessions: midpoint, venues, details, share ---
	session.RegisterRoutes(e.Group("/sessions"), sessionHandler, readyRequired)
}
