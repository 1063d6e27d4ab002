package middleware

import (
	"net/http"

	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
)

// MapsReady rejects requests with 503 until the mapping platform is
// initialized. ready is typically (*maps.Platform).Ready.
func MapsReady(ready func() error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := ready(); err != nil {
				c.Logger().Warnf("Rejecting %s %s: %v", c.Request().Method, c.Path(), err)
				return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Maps not ready. Please try again."})
			}
			return next(c)
		}
	}
}
