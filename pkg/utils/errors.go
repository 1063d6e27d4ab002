package utils

import (
	"errors"
	"net/http"

	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
)

// HandleServiceError maps a service error to its HTTP status and user text.
// Anything unrecognized is logged and reported as a 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, models.ErrPlatformUnavailable):
		return RespondWithError(c, http.StatusServiceUnavailable, "Maps not ready. Please try again.")
	case errors.Is(err, models.ErrInvalidInput):
		return RespondWithError(c, http.StatusBadRequest, "Address missing location data. Please reselect addresses.")
	case errors.Is(err, models.ErrGeolocationUnavailable):
		return RespondWithError(c, http.StatusBadRequest, "Current location is unavailable.")
	case errors.Is(err, models.ErrInvalidRoute):
		return RespondWithError(c, http.StatusUnprocessableEntity, "Failed to calculate route. Please try again.")
	case errors.Is(err, models.ErrTimeout):
		c.Logger().Warn("HandleServiceError: ", err)
		return RespondWithError(c, http.StatusGatewayTimeout, "The mapping service timed out.")
	case errors.Is(err, models.ErrSearchUnavailable):
		return RespondWithError(c, http.StatusBadGateway, "Failed to find places nearby.")
	case errors.Is(err, models.ErrDetailsFetchFailed):
		return RespondWithError(c, http.StatusBadGateway, "Failed to load place details.")
	case errors.Is(err, models.ErrCalculationInFlight):
		return RespondWithError(c, http.StatusConflict, "A calculation is already running.")
	case errors.Is(err, models.ErrNoMidpoint):
		return RespondWithError(c, http.StatusConflict, "Calculate a midpoint first.")
	case errors.Is(err, models.ErrShareUnavailable):
		return RespondWithError(c, http.StatusNotImplemented, "This share option is not available.")
	default:
		c.Logger().Error("HandleServiceError: ", err)
		return RespondWithError(c, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
