package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"meet-halfway/internal/models"
	"meet-halfway/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for sessions.
type Handler struct {
	store    *Store
	upgrader websocket.Upgrader
}

// NewHandler creates a new session handler. clientOrigin is the browser
// origin allowed to open the stream; empty or "*" allows any.
func NewHandler(store *Store, clientOrigin string) *Handler {
	h := &Handler{store: store}
	h.upgrader = websocket.Upgrader{CheckOrigin: originChecker(clientOrigin)}
	return h
}

func (h *Handler) session(c echo.Context) (*Session, error) {
	return h.store.Get(c.Param("id"))
}

func (h *Handler) CreateSession(c echo.Context) error {
	s := h.store.Create()
	return utils.RespondWithJSON(c, http.StatusCreated, s.Snapshot())
}

func (h *Handler) GetSession(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, s.Snapshot())
}

func (h *Handler) Calculate(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.CalculateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	snap, err := s.Calculate(c.Request().Context(), req)
	if err != nil {
		return h.searchError(c, s, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, snap)
}

func (h *Handler) Search(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	snap, err := s.Search(c.Request().Context(), req)
	if err != nil {
		return h.searchError(c, s, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, snap)
}

// searchError names the category in discovery failures.
func (h *Handler) searchError(c echo.Context, s *Session, err error) error {
	if errors.Is(err, models.ErrSearchUnavailable) {
		category := strings.ReplaceAll(string(s.Snapshot().Category), "_", " ")
		return utils.RespondWithError(c, http.StatusBadGateway, fmt.Sprintf("Failed to find %ss nearby.", category))
	}
	return utils.HandleServiceError(c, err)
}

func (h *Handler) Activate(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	card, err := s.Activate(c.Request().Context(), c.Param("placeId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, card)
}

func (h *Handler) Details(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	details, err := s.Select(c.Request().Context(), c.Param("placeId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, details)
}

func (h *Handler) Share(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	var req models.ShareRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Validation failed: "+err.Error())
	}

	res, err := s.Share(c.Request().Context(), c.Param("placeId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, res)
}

func (h *Handler) Map(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, s.Map())
}

// RegisterRoutes attaches session endpoints to the provided Echo group.
// mapsReady guards every route that reaches the mapping platform.
func RegisterRoutes(g *echo.Group, h *Handler, mapsReady echo.MiddlewareFunc) {
	g.POST("", h.CreateSession)
	g.GET("/:id", h.GetSession)
	g.GET("/:id/map", h.Map)
	g.POST("/:id/calculate", h.Calculate, mapsReady)
	g.PUT("/:id/search", h.Search, mapsReady)
	g.POST("/:id/venues/:placeId/activate", h.Activate, mapsReady)
	g.GET("/:id/venues/:placeId/details", h.Details, mapsReady)
	g.POST("/:id/venues/:placeId/share", h.Share)
	g.GET("/:id/stream", h.Stream, mapsReady)
}
