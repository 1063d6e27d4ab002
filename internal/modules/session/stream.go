package session

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"meet-halfway/internal/models"
	"meet-halfway/pkg/utils"

	"github.com/labstack/echo/v4"
)

func originChecker(allowed string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || allowed == "" || allowed == "*" || origin == allowed {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}

// Stream upgrades to a WebSocket. Each "visible" message activates that
// venue; the enriched card is pushed back as soon as it resolves, so slow
// lookups never hold up later ones.
func (h *Handler) Stream(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		c.Logger().Warnf("Session %s: websocket upgrade failed: %v", s.ID, err)
		return nil
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var (
		writeMu sync.Mutex
		wg      sync.WaitGroup
	)
	send := func(msg models.StreamMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(msg); err != nil {
			c.Logger().Debugf("Session %s: stream write failed: %v", s.ID, err)
		}
	}

	for {
		var msg models.StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type != models.StreamVisible || msg.PlaceID == "" {
			send(models.StreamMessage{Type: models.StreamError, PlaceID: msg.PlaceID, Message: "unsupported message"})
			continue
		}

		wg.Add(1)
		go func(placeID string) {
			defer wg.Done()
			card, err := s.Activate(ctx, placeID)
			if err != nil {
				send(models.StreamMessage{Type: models.StreamError, PlaceID: placeID, Message: err.Error()})
				return
			}
			send(models.StreamMessage{Type: models.StreamVenue, PlaceID: placeID, Venue: card})
		}(msg.PlaceID)
	}

	cancel()
	wg.Wait()
	return nil
}
