package utils

import (
	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes payload with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes the standard error body.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}
