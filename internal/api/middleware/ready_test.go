package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"meet-halfway/internal/models"

	"github.com/labstack/echo/v4"
)

func TestMapsReady(t *testing.T) {
	var readyErr error = models.ErrPlatformUnavailable
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, MapsReady(func() error { return readyErr }))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("not ready: status %d", rec.Code)
	}

	readyErr = nil
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: status %d", rec.Code)
	}
}
