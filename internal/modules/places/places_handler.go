package places

import (
	"net/http"

	"meet-halfway/internal/models"
	"meet-halfway/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for address entry.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new places handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Autocomplete(c echo.Context) error {
	suggestions, err := h.svc.Autocomplete(c.Request().Context(), c.QueryParam("input"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}

func (h *Handler) CurrentLocation(c echo.Context) error {
	var point models.GeoPoint
	err := echo.QueryParamsBinder(c).
		MustFloat64("lat", &point.Lat).
		MustFloat64("lng", &point.Lng).
		BindError()
	if err != nil {
		return utils.HandleServiceError(c, models.ErrGeolocationUnavailable)
	}
	if err := utils.GetValidator().Validate(point); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	place, err := h.svc.CurrentLocation(c.Request().Context(), point)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, place)
}

func (h *Handler) GetPlace(c echo.Context) error {
	place, err := h.svc.Resolve(c.Request().Context(), c.Param("placeId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, place)
}
